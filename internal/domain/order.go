package domain

import "time"

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и точечной отмены.
	ID string
	// OrderID — заказ, которому принадлежит позиция.
	OrderID string
	// ProductID — внешний идентификатор товара.
	ProductID string
	// ProductName фиксируется на момент покупки для писем и страниц отмены.
	ProductName string
	// PriceMinor — цена за единицу на момент покупки в минимальных денежных
	// единицах; последующие изменения цены товара на неё не влияют.
	PriceMinor int64
	// Qty — количество единиц товара.
	Qty int32
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// CostMinor возвращает стоимость позиции: qty * price.
func (i OrderItem) CostMinor() int64 {
	return int64(i.Qty) * i.PriceMinor
}

// Order агрегирует оформленный заказ и его позиции.
// У заказа нет промежуточных состояний: он либо существует, либо удалён
// отменой (вместе со всеми позициями, каскадно).
type Order struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Address    string
	PostalCode string
	City       string
	Items      []OrderItem
	CreatedAt  time.Time
}

// TotalMinor возвращает полную стоимость заказа как сумму стоимостей позиций.
func (o Order) TotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.CostMinor()
	}
	return total
}

// CancelWindow — период после оформления, в течение которого заказ
// предлагается к отмене.
const CancelWindow = 24 * time.Hour
