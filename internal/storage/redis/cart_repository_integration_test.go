package redis

import (
	"context"
	"os"
	"testing"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Интеграционные тесты требуют живой Redis:
//
//	SHOP_REDIS_TEST_ADDR=localhost:6379 go test ./internal/storage/redis/
func newTestRepository(t *testing.T) *CartRepository {
	t.Helper()

	addr := os.Getenv("SHOP_REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("SHOP_REDIS_TEST_ADDR is not set, skipping redis integration tests")
	}

	repo := NewCartRepository(addr)
	if err := repo.Ping(context.Background()); err != nil {
		t.Skipf("redis is not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCartRepository_PutGetClear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	const session = "it-session-1"

	lines := []domain.CartLine{
		{ProductID: "p-1", ProductName: "Widget", PriceMinor: 500, Qty: 2},
		{ProductID: "p-2", ProductName: "Gadget", PriceMinor: 300, Qty: 1},
	}
	if err := repo.Put(ctx, session, lines); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Get(ctx, session)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0].ProductName != "Widget" || got[0].CostMinor() != 1000 {
		t.Errorf("unexpected first line: %+v", got[0])
	}

	if err := repo.Clear(ctx, session); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = repo.Get(ctx, session)
	if err != nil {
		t.Fatalf("Get after Clear: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty cart after Clear, got %d lines", len(got))
	}
}

func TestCartRepository_MissingSessionIsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty cart for unknown session, got %d lines", len(got))
	}
}
