package memory_test

import (
	"context"
	"testing"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func TestCartRepository_PutGetClear(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCartRepository()

	lines := []domain.CartLine{
		{ProductID: "p-1", ProductName: "Widget", PriceMinor: 500, Qty: 2},
		{ProductID: "p-2", ProductName: "Gadget", PriceMinor: 300, Qty: 1},
	}
	if err := repo.Put(ctx, "session-1", lines); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := repo.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}

	if err := repo.Clear(ctx, "session-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	got, err = repo.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("get after clear failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(got))
	}
}

func TestCartRepository_GetUnknownSession(t *testing.T) {
	repo := memory.NewCartRepository()

	got, err := repo.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart for unknown session, got %d lines", len(got))
	}
}
