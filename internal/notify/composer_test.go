package notify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/notify"
)

const testFrom = "orders@shop.example"

func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:        "order-1",
		FirstName: "Ann",
		LastName:  "Smith",
		Email:     "ann@example.com",
		Items: []domain.OrderItem{
			{ID: "item-1", OrderID: "order-1", ProductID: "p-1", ProductName: "Widget", PriceMinor: 500, Qty: 2, CreatedAt: now},
			{ID: "item-2", OrderID: "order-1", ProductID: "p-2", ProductName: "Gadget", PriceMinor: 300, Qty: 1, CreatedAt: now},
		},
		CreatedAt: now,
	}
}

func TestComposerOrderCreated(t *testing.T) {
	msg := notify.NewComposer(testFrom).OrderCreated(makeOrder())

	if msg.Subject != "Order nr. order-1" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if msg.From != testFrom {
		t.Fatalf("unexpected from: %q", msg.From)
	}
	if len(msg.To) != 1 || msg.To[0] != "ann@example.com" {
		t.Fatalf("unexpected recipients: %v", msg.To)
	}

	for _, want := range []string{
		"Dear Ann,",
		"You have successfully placed an order. Your order id is order-1.",
		"2x Widget  $5.0",
		"1x Gadget  $3.0",
		"Total: $13.0",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestComposerOrderCanceled(t *testing.T) {
	msg := notify.NewComposer(testFrom).OrderCanceled(makeOrder())

	if msg.Subject != "Order canceled nr. order-1" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{
		"Dear Ann Smith,",
		"Your order was canceled. Your order id is order-1.",
		"2x Widget  $5.0",
		"1x Gadget  $3.0",
		"Total: $13.0",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestComposerItemCanceled(t *testing.T) {
	order := makeOrder()
	msg := notify.NewComposer(testFrom).ItemCanceled(order, order.Items[0])

	if msg.Subject != "Canceled item nr. item-1" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{
		"Dear Ann Smith,",
		"Your item was canceled. Your item id is item-1.",
		"Widget",
		"Total: $10.0",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
	if len(msg.To) != 1 || msg.To[0] != order.Email {
		t.Fatalf("expected mail to order owner, got %v", msg.To)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{500, "5.0"},
		{550, "5.5"},
		{525, "5.25"},
		{1300, "13.0"},
		{0, "0.0"},
		{1, "0.01"},
	}
	for _, tc := range cases {
		if got := notify.FormatAmount(tc.minor); got != tc.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
