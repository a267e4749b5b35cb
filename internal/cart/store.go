package cart

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/hogarclick/storefront-backend/internal/catalog"
)

// Store is the authoritative cart state for one session. It holds an
// ordered line list (insertion order = display order) with at most one line
// per product id, persists on every mutation and notifies subscribers so
// renderers never reach into shared state.
type Store struct {
	session string
	storage Storage
	lines   []Line
	subs    []func([]Line)
}

// Open rehydrates the session's cart from storage. Malformed persisted data
// (non-array, corrupt serialization) yields an empty cart; the bad value is
// discarded on the next write.
func Open(ctx context.Context, storage Storage, session string) (*Store, error) {
	s := &Store{session: session, storage: storage}

	raw, err := storage.LoadLines(ctx, session)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return s, nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return s, nil
	}
	// drop any lines a corrupt writer left at quantity < 1
	for _, l := range lines {
		if l.Quantity >= 1 {
			s.lines = append(s.lines, l)
		}
	}
	return s, nil
}

// Subscribe registers a renderer callback invoked after every persisted
// mutation with a copy of the current lines.
func (s *Store) Subscribe(fn func([]Line)) {
	s.subs = append(s.subs, fn)
}

// AddOrIncrement adds a new line for the product, or bumps the quantity of
// the existing line with the same product id. The product's display fields
// are copied at insertion time.
func (s *Store) AddOrIncrement(ctx context.Context, p catalog.Product) error {
	if l := s.find(p.ID); l != nil {
		l.Quantity++
	} else {
		s.lines = append(s.lines, newLine(p))
	}
	return s.persist(ctx)
}

func (s *Store) Increment(ctx context.Context, productID int64) error {
	l := s.find(productID)
	if l == nil {
		return ErrLineNotFound
	}
	l.Quantity++
	return s.persist(ctx)
}

// Decrement lowers the quantity by one. At quantity 1 it is a no-op:
// removal is always explicit, quantity never reaches 0 through decrement.
func (s *Store) Decrement(ctx context.Context, productID int64) error {
	l := s.find(productID)
	if l == nil {
		return ErrLineNotFound
	}
	if l.Quantity <= 1 {
		return nil
	}
	l.Quantity--
	return s.persist(ctx)
}

// Remove deletes the line entirely regardless of its quantity.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return ErrLineNotFound
}

// Clear removes all lines. Checkout completion and the explicit empty-cart
// action are the only callers.
func (s *Store) Clear(ctx context.Context) error {
	s.lines = nil
	return s.persist(ctx)
}

// Lines returns a copy of the current lines in display order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount is the sum of all quantities, recomputed on every call.
func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice sums line totals at effective unit prices. Accumulation stays
// at full float precision; rounding is display-only.
func (s *Store) TotalPrice() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Total()
	}
	return total
}

func (s *Store) find(productID int64) *Line {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	err = s.storage.Save(ctx, s.session,
		string(raw),
		strconv.Itoa(s.ItemCount()),
		strconv.FormatFloat(s.TotalPrice(), 'f', -1, 64),
	)
	if err != nil {
		return err
	}
	for _, fn := range s.subs {
		fn(s.Lines())
	}
	return nil
}
