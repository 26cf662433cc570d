package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderExists
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = cloneOrder(order)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// GetItem ищет позицию по всем заказам.
func (r *orderRepositoryInMemory) GetItem(id string) (domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.items {
		for _, item := range order.Items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return domain.OrderItem{}, domain.ErrOrderItemNotFound
}

// ListCreatedBetween возвращает заказы, созданные в интервале [from, to],
// от новых к старым.
func (r *orderRepositoryInMemory) ListCreatedBetween(from, to time.Time) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if order.CreatedAt.Before(from) || order.CreatedAt.After(to) {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

// DeleteItem удаляет одну позицию, сам заказ остаётся.
func (r *orderRepositoryInMemory) DeleteItem(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for orderID, order := range r.items {
		for idx, item := range order.Items {
			if item.ID != id {
				continue
			}
			updated := cloneOrder(order)
			updated.Items = append(updated.Items[:idx], updated.Items[idx+1:]...)
			r.items[orderID] = updated
			return nil
		}
	}
	return domain.ErrOrderItemNotFound
}

func cloneOrder(order domain.Order) domain.Order {
	clone := order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return clone
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
