// Package orders реализует жизненный цикл заказа: оформление из корзины,
// список заказов в окне отмены, отмена заказа целиком и отмена одной позиции.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/notify"
)

// Workflow оркестрирует репозиторий заказов, корзину, почтовый транспорт
// и публикацию событий. Собственного состояния не имеет.
type Workflow struct {
	repo     domain.OrderRepository
	carts    domain.CartRepository
	sender   domain.NotificationSender
	composer *notify.Composer
	logger   *log.Entry

	events  domain.EventPublisher
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// Option настраивает Workflow.
type Option func(*Workflow)

// WithEventPublisher включает публикацию событий жизненного цикла заказа.
func WithEventPublisher(events domain.EventPublisher) Option {
	return func(w *Workflow) {
		w.events = events
	}
}

// WithMetrics включает счётчики операций и почтовых отправок.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(w *Workflow) {
		w.metrics = m
	}
}

// WithClock подменяет источник времени в тестах.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// NewWorkflow конструирует workflow с зависимостями.
func NewWorkflow(
	repo domain.OrderRepository,
	carts domain.CartRepository,
	sender domain.NotificationSender,
	composer *notify.Composer,
	logger *log.Entry,
	opts ...Option,
) *Workflow {
	if logger == nil {
		logger = log.WithField("component", "order-workflow")
	}

	w := &Workflow{
		repo:     repo,
		carts:    carts,
		sender:   sender,
		composer: composer,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create оформляет заказ из корзины сессии.
// Порядок фиксированный: валидация формы, запись заказа с позициями,
// очистка корзины, событие, письмо. Ошибка почтового транспорта
// возвращается вызывающему, но заказ к этому моменту уже зафиксирован.
func (w *Workflow) Create(ctx context.Context, sessionID string, form domain.CheckoutForm) (domain.Order, error) {
	form = form.Normalize()
	if verr := form.Validate(); verr != nil {
		if w.metrics != nil {
			w.metrics.RecordCheckoutRejected()
		}
		return domain.Order{}, verr
	}

	lines, err := w.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("read cart: %w", err)
	}

	now := w.now().UTC()
	order := domain.Order{
		ID:         uuid.NewString(),
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Address:    form.Address,
		PostalCode: form.PostalCode,
		City:       form.City,
		CreatedAt:  now,
	}
	for _, line := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			PriceMinor:  line.PriceMinor,
			Qty:         line.Qty,
			CreatedAt:   now,
		})
	}

	if err := w.repo.Create(order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	if w.metrics != nil {
		w.metrics.RecordOrderCreated()
	}
	w.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
	}).Info("order created")

	// Корзина не должна переиспользоваться для второго заказа.
	if err := w.carts.Clear(ctx, sessionID); err != nil {
		return order, fmt.Errorf("clear cart: %w", err)
	}

	w.publish(domain.NewOrderEvent(domain.EventTypeOrderCreated, order.ID, "", order.Email))

	if err := w.send(ctx, w.composer.OrderCreated(order)); err != nil {
		return order, err
	}
	return order, nil
}

// Cart возвращает текущее содержимое корзины сессии для страницы оформления.
func (w *Workflow) Cart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return w.carts.Get(ctx, sessionID)
}

// List возвращает заказы, созданные в последние 24 часа от now, то есть
// всё ещё доступные для отмены.
func (w *Workflow) List(_ context.Context, now time.Time) ([]domain.Order, error) {
	return w.repo.ListCreatedBetween(now.Add(-domain.CancelWindow), now)
}

// GetForCancellation возвращает заказ с позициями для страницы подтверждения
// отмены. Строгая выборка: отсутствие заказа — ошибка ErrOrderNotFound.
func (w *Workflow) GetForCancellation(_ context.Context, orderID string) (domain.Order, error) {
	return w.repo.Get(orderID)
}

// CancelOrder отменяет заказ: письмо отправляется до удаления, чтобы текст
// ещё видел позиции; ошибка транспорта прерывает отмену, заказ остаётся.
func (w *Workflow) CancelOrder(ctx context.Context, orderID string) error {
	order, err := w.repo.Get(orderID)
	if err != nil {
		return err
	}

	if err := w.send(ctx, w.composer.OrderCanceled(order)); err != nil {
		return err
	}

	w.publish(domain.NewOrderEvent(domain.EventTypeOrderCanceled, order.ID, "", order.Email))

	if err := w.repo.Delete(order.ID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if w.metrics != nil {
		w.metrics.RecordOrderCanceled()
	}
	w.logger.WithField("order_id", order.ID).Info("order canceled")
	return nil
}

// CancelItem отменяет одну позицию заказа, сам заказ остаётся.
func (w *Workflow) CancelItem(ctx context.Context, itemID string) error {
	item, err := w.repo.GetItem(itemID)
	if err != nil {
		return err
	}
	order, err := w.repo.Get(item.OrderID)
	if err != nil {
		return fmt.Errorf("load owning order %s: %w", item.OrderID, err)
	}

	if err := w.send(ctx, w.composer.ItemCanceled(order, item)); err != nil {
		return err
	}

	w.publish(domain.NewOrderEvent(domain.EventTypeItemCanceled, order.ID, item.ID, order.Email))

	if err := w.repo.DeleteItem(item.ID); err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if w.metrics != nil {
		w.metrics.RecordItemCanceled()
	}
	w.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"item_id":  item.ID,
	}).Info("order item canceled")
	return nil
}

// send отправляет письмо и классифицирует ошибку транспорта.
func (w *Workflow) send(ctx context.Context, msg domain.MailMessage) error {
	start := time.Now()
	err := w.sender.Send(ctx, msg)
	if w.metrics != nil {
		w.metrics.RecordMailSend(time.Since(start), err)
	}
	if err != nil {
		w.logger.WithError(err).WithField("subject", msg.Subject).Error("notification mail failed")
		if !errors.Is(err, domain.ErrMailTransport) {
			return fmt.Errorf("%w: %w", domain.ErrMailTransport, err)
		}
		return err
	}
	return nil
}

// publish отправляет событие best-effort: сбой шины не валит операцию.
func (w *Workflow) publish(event domain.OrderEvent) {
	if w.events == nil {
		return
	}
	if err := w.events.Publish(event); err != nil {
		w.logger.WithError(err).WithFields(log.Fields{
			"event_type": event.EventType,
			"order_id":   event.OrderID,
		}).Warn("failed to publish order event")
	}
}
