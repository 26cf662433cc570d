// Package mail содержит реализации domain.NotificationSender.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// SMTPConfig — настройки подключения к SMTP-серверу.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender отправляет письма через SMTP.
type SMTPSender struct {
	client *gomail.Client
}

// NewSMTPSender создаёт SMTP-отправителя. Аутентификация включается,
// только если задан username.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPSender{client: client}, nil
}

// Send отправляет письмо синхронно; ошибка транспорта оборачивается
// в domain.ErrMailTransport и не подавляется.
func (s *SMTPSender) Send(ctx context.Context, msg domain.MailMessage) error {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("%w: set from %q: %w", domain.ErrMailTransport, msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("%w: set recipients %v: %w", domain.ErrMailTransport, msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMailTransport, err)
	}
	return nil
}

var _ domain.NotificationSender = (*SMTPSender)(nil)
