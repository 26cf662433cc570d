package domain

import "time"

// EventType определяет тип события жизненного цикла заказа.
type EventType string

const (
	// EventTypeOrderCreated — заказ оформлен.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderCanceled — заказ отменён целиком.
	EventTypeOrderCanceled EventType = "order.canceled"
	// EventTypeItemCanceled — отменена отдельная позиция заказа.
	EventTypeItemCanceled EventType = "order.item_canceled"
)

// OrderEvent — событие жизненного цикла заказа для внешних потребителей.
type OrderEvent struct {
	EventType EventType `json:"event_type"`
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id,omitempty"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent создаёт событие с текущей меткой времени.
func NewOrderEvent(eventType EventType, orderID, itemID, email string) OrderEvent {
	return OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		ItemID:    itemID,
		Email:     email,
		Timestamp: time.Now().UTC(),
	}
}
