package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// helper для создания базового заказа с двумя позициями.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:         "order-1",
		FirstName:  "Ann",
		LastName:   "Smith",
		Email:      "ann@example.com",
		Address:    "1 Main st",
		PostalCode: "10001",
		City:       "Springfield",
		Items: []domain.OrderItem{
			{ID: "item-1", OrderID: "order-1", ProductID: "p-1", ProductName: "Widget", PriceMinor: 500, Qty: 2, CreatedAt: now},
			{ID: "item-2", OrderID: "order-1", ProductID: "p-2", ProductName: "Gadget", PriceMinor: 300, Qty: 1, CreatedAt: now},
		},
		CreatedAt: now,
	}
}

func TestOrderTotalMinor(t *testing.T) {
	order := makeOrder()
	if got := order.TotalMinor(); got != 1300 {
		t.Fatalf("expected total 1300, got %d", got)
	}
}

func TestOrderTotalMinor_Empty(t *testing.T) {
	order := makeOrder()
	order.Items = nil
	if got := order.TotalMinor(); got != 0 {
		t.Fatalf("expected total 0 for empty order, got %d", got)
	}
}

func TestOrderItemCostMinor(t *testing.T) {
	item := domain.OrderItem{PriceMinor: 250, Qty: 4}
	if got := item.CostMinor(); got != 1000 {
		t.Fatalf("expected cost 1000, got %d", got)
	}
}

func TestCartLineCostMinor(t *testing.T) {
	line := domain.CartLine{PriceMinor: 199, Qty: 3}
	if got := line.CostMinor(); got != 597 {
		t.Fatalf("expected cost 597, got %d", got)
	}
}
