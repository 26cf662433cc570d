package domain

import (
	"context"
	"time"
)

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями.
	// Возвращает ErrOrderExists, если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ с позициями или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// GetItem возвращает позицию заказа или ErrOrderItemNotFound.
	GetItem(id string) (OrderItem, error)
	// ListCreatedBetween возвращает заказы, созданные в интервале [from, to].
	ListCreatedBetween(from, to time.Time) ([]Order, error)
	// Delete удаляет заказ и каскадно все его позиции.
	// Возвращает ErrOrderNotFound, если заказа нет.
	Delete(id string) error
	// DeleteItem удаляет одну позицию, не трогая заказ.
	// Возвращает ErrOrderItemNotFound, если позиции нет.
	DeleteItem(id string) error
}

// CartRepository описывает доступ к сессионной корзине.
// Наполнение корзины — зона ответственности внешнего компонента.
type CartRepository interface {
	// Get возвращает содержимое корзины сессии; пустая корзина — не ошибка.
	Get(ctx context.Context, sessionID string) ([]CartLine, error)
	// Clear очищает корзину после успешного оформления заказа.
	Clear(ctx context.Context, sessionID string) error
}

// MailMessage — письмо для почтового транспорта.
type MailMessage struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// NotificationSender отправляет письмо-уведомление.
// Ошибка транспорта не подавляется и доходит до вызывающего кода.
type NotificationSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// EventPublisher публикует события жизненного цикла заказа.
type EventPublisher interface {
	Publish(event OrderEvent) error
}
