package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/hogarclick/storefront-backend/internal/catalog"
)

func f(v float64) *float64 { return &v }

var (
	productA = catalog.Product{ID: 1, Name: "Heladera", Price: 100, ImageURL: "/a.jpg", Installments: 12}
	productB = catalog.Product{ID: 2, Name: "Pava eléctrica", Price: 50, SalePrice: f(40), OnSale: true, ImageURL: "/b.jpg"}
)

func openStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	s, err := Open(context.Background(), storage, "sess-1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestAddOrIncrement_DeduplicatesByProductID(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	if err := s.AddOrIncrement(ctx, productA); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddOrIncrement(ctx, productA); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestDecrement_NeverReachesZero(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productA)
	if err := s.Decrement(ctx, productA.ID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if got := s.Lines()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	// at quantity 1 decrement is a guarded no-op
	if err := s.Decrement(ctx, productA.ID); err != nil {
		t.Fatalf("decrement at 1: %v", err)
	}
	if got := s.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity dropped below 1: %d", got)
	}
}

func TestRemove_DeletesRegardlessOfQuantity(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	for i := 0; i < 5; i++ {
		_ = s.AddOrIncrement(ctx, productA)
	}
	if err := s.Remove(ctx, productA.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Lines()) != 0 {
		t.Fatal("expected empty cart after remove")
	}

	if err := s.Remove(ctx, productA.ID); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestItemCountAndTotalPrice(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	// A: price 100, not on sale, qty 2; B: price 50, on sale at 40, qty 1
	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productB)

	if got := s.ItemCount(); got != 3 {
		t.Fatalf("item count: got %d, want 3", got)
	}
	if got := s.TotalPrice(); got != 240 {
		t.Fatalf("total price: got %v, want 240", got)
	}
}

func TestAddAddDecrementScenario(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productA)
	_ = s.Decrement(ctx, productA.ID)

	if got := s.Lines()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productB)
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.ItemCount() != 0 || s.TotalPrice() != 0 {
		t.Fatalf("expected empty cart, count=%d total=%v", s.ItemCount(), s.TotalPrice())
	}
}

func TestPersistence_ThreeKeysWrittenTogether(t *testing.T) {
	ctx := context.Background()
	storage := NewInMemoryStorage()
	s := openStore(t, storage)

	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productB)

	v := storage.data["sess-1"]
	var lines []Line
	if err := json.Unmarshal([]byte(v[0]), &lines); err != nil {
		t.Fatalf("persisted lines not JSON: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 persisted lines, got %d", len(lines))
	}
	if count, _ := strconv.Atoi(v[1]); count != 2 {
		t.Fatalf("persisted count %q, want 2", v[1])
	}
	if total, _ := strconv.ParseFloat(v[2], 64); total != 140 {
		t.Fatalf("persisted total %q, want 140", v[2])
	}
}

func TestRehydration_RederivesFromLines(t *testing.T) {
	ctx := context.Background()
	storage := NewInMemoryStorage()
	s := openStore(t, storage)
	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productA)

	// scalar keys are denormalized copies; lie in them and make sure a new
	// store re-derives from the line array instead
	v := storage.data["sess-1"]
	storage.Seed("sess-1", v[0], "999", "999999")

	s2 := openStore(t, storage)
	if got := s2.ItemCount(); got != 2 {
		t.Fatalf("rehydrated count %d, want 2", got)
	}
	if got := s2.TotalPrice(); got != 200 {
		t.Fatalf("rehydrated total %v, want 200", got)
	}
}

func TestRehydration_MalformedDataMeansEmptyCart(t *testing.T) {
	for _, raw := range []string{"not-json", `{"a":1}`, `123`} {
		storage := NewInMemoryStorage()
		storage.Seed("sess-1", raw, "3", "100")

		s := openStore(t, storage)
		if s.ItemCount() != 0 || len(s.Lines()) != 0 {
			t.Fatalf("raw %q: expected empty cart", raw)
		}
	}
}

func TestStaleLine_RendersDenormalizedFields(t *testing.T) {
	// persisted cart references a product that no longer exists in any
	// catalog; the line still rehydrates from its snapshot
	line := Line{ProductID: 404, Name: "Discontinued", Price: 10, Quantity: 2}
	raw, _ := json.Marshal([]Line{line})
	storage := NewInMemoryStorage()
	storage.Seed("sess-1", string(raw), "2", "20")

	s := openStore(t, storage)
	lines := s.Lines()
	if len(lines) != 1 || lines[0].Name != "Discontinued" {
		t.Fatalf("expected stale line to survive, got %+v", lines)
	}
	if s.TotalPrice() != 20 {
		t.Fatalf("stale total %v, want 20", s.TotalPrice())
	}
}

func TestSubscribe_NotifiedOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	var calls int
	var last []Line
	s.Subscribe(func(lines []Line) {
		calls++
		last = lines
	})

	_ = s.AddOrIncrement(ctx, productA)
	_ = s.Increment(ctx, productA.ID)
	_ = s.Clear(ctx)

	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}
	if len(last) != 0 {
		t.Fatalf("last notification should carry empty cart, got %+v", last)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, NewInMemoryStorage())

	_ = s.AddOrIncrement(ctx, productB)
	_ = s.AddOrIncrement(ctx, productA)
	_ = s.AddOrIncrement(ctx, productB)

	lines := s.Lines()
	if lines[0].ProductID != productB.ID || lines[1].ProductID != productA.ID {
		t.Fatalf("insertion order lost: %+v", lines)
	}
}
