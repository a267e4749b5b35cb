package order

import (
	"context"
	"testing"
)

func sampleOrder(key string) Order {
	return Order{
		IdempotencyKey: key,
		CustomerName:   "Ana García",
		CustomerEmail:  "ana@example.com",
		CustomerPhone:  "1155550000",
		Address:        "Av. Rivadavia 1234, CABA, Buenos Aires",
		PostalCode:     "1406",
		Recipient:      "Ana",
		Items: []Item{
			{ProductID: 1, Name: "Heladera", Price: 100, Quantity: 2, Installments: 12},
			{ProductID: 2, Name: "Pava", Price: 40, Quantity: 1, Installments: 12},
		},
		Total: 240,
	}
}

func TestCreate_DefaultsToPending(t *testing.T) {
	s := NewService(NewInMemoryRepository(), NewMemoryGuard())
	created, err := s.Create(context.Background(), sampleOrder("k1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCreate_RejectsEmptyOrder(t *testing.T) {
	s := NewService(NewInMemoryRepository(), NewMemoryGuard())
	o := sampleOrder("k1")
	o.Items = nil
	if _, err := s.Create(context.Background(), o); err == nil {
		t.Fatal("expected error for empty order")
	}
}

func TestCreate_IdempotentUnderKeyReuse(t *testing.T) {
	s := NewService(NewInMemoryRepository(), NewMemoryGuard())
	ctx := context.Background()

	first, err := s.Create(ctx, sampleOrder("retry-key"))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := s.Create(ctx, sampleOrder("retry-key"))
	if err != nil {
		t.Fatalf("replayed create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replay created a duplicate: %d vs %d", second.ID, first.ID)
	}

	orders, _ := s.List()
	if len(orders) != 1 {
		t.Fatalf("expected exactly one stored order, got %d", len(orders))
	}
}

func TestCreate_DistinctKeysCreateDistinctOrders(t *testing.T) {
	s := NewService(NewInMemoryRepository(), NewMemoryGuard())
	ctx := context.Background()

	a, _ := s.Create(ctx, sampleOrder("k-a"))
	b, _ := s.Create(ctx, sampleOrder("k-b"))
	if a.ID == b.ID {
		t.Fatal("distinct keys must create distinct orders")
	}
}

func TestUpdateStatus(t *testing.T) {
	s := NewService(NewInMemoryRepository(), NewMemoryGuard())
	created, _ := s.Create(context.Background(), sampleOrder("k1"))

	updated, err := s.UpdateStatus(created.ID, StatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusShipped {
		t.Fatalf("expected shipped, got %q", updated.Status)
	}

	if _, err := s.UpdateStatus(created.ID, "teleported"); err == nil {
		t.Fatal("expected invalid status error")
	}
	if _, err := s.UpdateStatus(999, StatusShipped); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
