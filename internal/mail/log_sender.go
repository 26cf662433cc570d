package mail

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// LogSender пишет письма в лог вместо отправки.
// NOTE: Используется для локальной разработки, когда SMTP не настроен.
type LogSender struct {
	logger *log.Entry
}

// NewLogSender создаёт лог-отправителя.
func NewLogSender(logger *log.Entry) *LogSender {
	if logger == nil {
		logger = log.WithField("component", "mail")
	}
	return &LogSender{logger: logger}
}

// Send логирует письмо и всегда завершается успешно.
func (s *LogSender) Send(_ context.Context, msg domain.MailMessage) error {
	s.logger.WithFields(log.Fields{
		"subject": msg.Subject,
		"from":    msg.From,
		"to":      msg.To,
	}).Info("mail transport disabled, message logged")
	s.logger.Debug(msg.Body)
	return nil
}

var _ domain.NotificationSender = (*LogSender)(nil)
