package cart

import (
	"context"
	"sync"
)

// Storage persists a session's cart under three independent string keys: the
// serialized line array plus denormalized copies of the item count and total
// price. The scalar keys exist for cheap display reads only — rehydration
// always re-derives count and total from the line array and never trusts
// them.
type Storage interface {
	Save(ctx context.Context, session, lines, count, total string) error
	// LoadLines returns the serialized line array, or "" when the session
	// has no persisted cart.
	LoadLines(ctx context.Context, session string) (string, error)
}

// InMemoryStorage is used for tests and local scenarios.
type InMemoryStorage struct {
	mu   sync.RWMutex
	data map[string][3]string
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{data: make(map[string][3]string)}
}

func (s *InMemoryStorage) Save(_ context.Context, session, lines, count, total string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session] = [3]string{lines, count, total}
	return nil
}

func (s *InMemoryStorage) LoadLines(_ context.Context, session string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[session]
	if !ok {
		return "", nil
	}
	return v[0], nil
}

// Seed writes raw values directly, bypassing the store. Tests use it to
// simulate corrupt persisted carts.
func (s *InMemoryStorage) Seed(session, lines, count, total string) {
	_ = s.Save(context.Background(), session, lines, count, total)
}
