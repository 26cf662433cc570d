package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// NewCartRepository возвращает in-memory хранилище корзин.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string][]domain.CartLine),
	}
}

// CartRepository — in-memory реализация domain.CartRepository.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine
}

// Get возвращает содержимое корзины; отсутствие корзины — пустой срез.
func (r *CartRepository) Get(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.carts[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

// Clear удаляет корзину сессии.
func (r *CartRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}

// Put кладёт содержимое корзины целиком. Наполнение корзины — дело внешнего
// компонента; метод нужен тестам и локальной разработке.
func (r *CartRepository) Put(_ context.Context, sessionID string, lines []domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	r.carts[sessionID] = stored
	return nil
}

var _ domain.CartRepository = (*CartRepository)(nil)
