package mail

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// MockSender — конфигурируемая заглушка NotificationSender для тестов.
type MockSender struct {
	SendErr error

	mu       sync.Mutex
	messages []domain.MailMessage
}

// NewMockSender возвращает mock с успешным сценарием по умолчанию.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send запоминает письмо и возвращает заранее настроенный результат.
func (m *MockSender) Send(_ context.Context, msg domain.MailMessage) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Messages возвращает копию отправленных писем.
func (m *MockSender) Messages() []domain.MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.MailMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

var _ domain.NotificationSender = (*MockSender)(nil)
