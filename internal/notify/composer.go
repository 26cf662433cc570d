// Package notify формирует письма-уведомления о жизненном цикле заказа.
// Формирование чистое: транспорт остаётся за domain.NotificationSender.
package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Composer собирает тексты писем с фиксированным адресом отправителя.
type Composer struct {
	from string
}

// NewComposer создаёт composer с адресом отправителя для всех писем.
func NewComposer(from string) *Composer {
	return &Composer{from: from}
}

// OrderCreated — письмо об успешном оформлении заказа.
func (c *Composer) OrderCreated(order domain.Order) domain.MailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nYou have successfully placed an order. Your order id is %s.\n\n\n", order.FirstName, order.ID)
	b.WriteString("Your order: \n\n")
	b.WriteString(itemLines(order.Items))
	b.WriteString("\n\n\n Total: $" + FormatAmount(order.TotalMinor()))

	return domain.MailMessage{
		Subject: fmt.Sprintf("Order nr. %s", order.ID),
		Body:    b.String(),
		From:    c.from,
		To:      []string{order.Email},
	}
}

// OrderCanceled — письмо об отмене заказа целиком, со всеми текущими позициями.
func (c *Composer) OrderCanceled(order domain.Order) domain.MailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s %s,\n\nYour order was canceled. Your order id is %s.\n\n\n", order.FirstName, order.LastName, order.ID)
	b.WriteString("Your order canceled: \n\n")
	b.WriteString(itemLines(order.Items))
	b.WriteString("\n\n\n Total: $" + FormatAmount(order.TotalMinor()))

	return domain.MailMessage{
		Subject: fmt.Sprintf("Order canceled nr. %s", order.ID),
		Body:    b.String(),
		From:    c.from,
		To:      []string{order.Email},
	}
}

// ItemCanceled — письмо об отмене одной позиции; получатель — владелец заказа.
func (c *Composer) ItemCanceled(order domain.Order, item domain.OrderItem) domain.MailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s %s,\n\nYour item was canceled. Your item id is %s.\n\n\n", order.FirstName, order.LastName, item.ID)
	b.WriteString("Your item canceled: \n\n")
	b.WriteString(item.ProductName)
	b.WriteString("\n\n\n Total: $" + FormatAmount(item.CostMinor()))

	return domain.MailMessage{
		Subject: fmt.Sprintf("Canceled item nr. %s", item.ID),
		Body:    b.String(),
		From:    c.from,
		To:      []string{order.Email},
	}
}

// itemLines собирает строки вида "2x Widget  $5.0\n", разделённые пробелом.
func itemLines(items []domain.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%dx %s  $%s\n", item.Qty, item.ProductName, FormatAmount(item.PriceMinor)))
	}
	return strings.Join(lines, " ")
}

// FormatAmount печатает сумму в долларах из минимальных единиц:
// 500 -> "5.0", 550 -> "5.5", 525 -> "5.25". Целые суммы всегда
// получают дробную часть ".0".
func FormatAmount(minor int64) string {
	s := strconv.FormatFloat(float64(minor)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
