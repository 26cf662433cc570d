package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/mail"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/orders/internal/storage/redis"
)

// Dependencies содержит инфраструктурные зависимости приложения.
// Полям с nil-значениями соответствуют in-memory замены.
type Dependencies struct {
	Repo   domain.OrderRepository
	Carts  domain.CartRepository
	Sender domain.NotificationSender
	Logger *log.Entry

	store *postgres.Store
	redis *redisstore.CartRepository
}

// NewDependencies собирает хранилища и отправку почты по конфигурации.
// Без SHOP_POSTGRES_DSN заказы живут в памяти, без SHOP_REDIS_ADDR
// корзина живёт в памяти, без SHOP_SMTP_HOST письма пишутся в лог.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		deps.store = store
		deps.Repo = postgres.NewOrderRepository(store)
		logger.Info("postgres order storage initialized")
	} else {
		deps.Repo = memory.NewOrderRepository()
		logger.Warn("SHOP_POSTGRES_DSN is empty, using in-memory order storage")
	}

	if cfg.RedisAddr != "" {
		deps.redis = redisstore.NewCartRepository(cfg.RedisAddr)
		deps.Carts = deps.redis
		logger.WithField("addr", cfg.RedisAddr).Info("redis cart storage initialized")
	} else {
		deps.Carts = memory.NewCartRepository()
		logger.Warn("SHOP_REDIS_ADDR is empty, using in-memory cart storage")
	}

	if cfg.SMTPHost != "" {
		sender, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to create smtp sender: %w", err)
		}
		deps.Sender = sender
	} else {
		deps.Sender = mail.NewLogSender(logger.WithField("component", "mail"))
		logger.Warn("SHOP_SMTP_HOST is empty, mail will be written to the log")
	}

	return deps, nil
}

// RegisterHealthChecks регистрирует проверки подключённых зависимостей.
func (d *Dependencies) RegisterHealthChecks(h *health.Handler) {
	if d.store != nil {
		h.Register("postgres", d.store.Ping)
	}
	if d.redis != nil {
		h.Register("redis", d.redis.Ping)
	}
}

// Close освобождает соединения с Postgres и Redis.
func (d *Dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres pool")
		}
	}
}
