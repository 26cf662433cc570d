// Package redis хранит сессионные корзины в Redis.
// Ключи разделяются с внешним компонентом корзины, который их наполняет.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	cartKeyPrefix = "cart:"
	defaultTTL    = 7 * 24 * time.Hour
)

// CartRepository — реализация domain.CartRepository поверх Redis.
type CartRepository struct {
	client *goredis.Client
}

// NewCartRepository создаёт хранилище корзин на указанном адресе Redis.
func NewCartRepository(addr string) *CartRepository {
	return &CartRepository{
		client: goredis.NewClient(&goredis.Options{Addr: addr}),
	}
}

// Get возвращает содержимое корзины сессии; отсутствующий ключ — пустая корзина.
func (r *CartRepository) Get(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	raw, err := r.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart %s: %w", sessionID, err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return lines, nil
}

// Clear удаляет корзину сессии.
func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart %s: %w", sessionID, err)
	}
	return nil
}

// Put кладёт содержимое корзины целиком; нужен тестам и локальной разработке,
// в продуктиве корзину пишет внешний компонент.
func (r *CartRepository) Put(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", sessionID, err)
	}
	if err := r.client.Set(ctx, cartKey(sessionID), raw, defaultTTL).Err(); err != nil {
		return fmt.Errorf("put cart %s: %w", sessionID, err)
	}
	return nil
}

// Ping проверяет доступность Redis для health check.
func (r *CartRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает подключение к Redis.
func (r *CartRepository) Close() error {
	return r.client.Close()
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

var _ domain.CartRepository = (*CartRepository)(nil)
