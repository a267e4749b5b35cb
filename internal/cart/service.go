package cart

import (
	"context"

	"github.com/hogarclick/storefront-backend/internal/catalog"
)

// Service opens the session's store around each operation: rehydrate,
// mutate, persist. The catalog is consulted only on add; existing lines
// always render from their denormalized snapshot, so a stale line whose
// product was deleted keeps working.
type Service struct {
	storage Storage
	catalog *catalog.Service
}

func NewService(storage Storage, catalogService *catalog.Service) *Service {
	return &Service{storage: storage, catalog: catalogService}
}

func (s *Service) Get(ctx context.Context, session string) (*Store, error) {
	return Open(ctx, s.storage, session)
}

func (s *Service) AddProduct(ctx context.Context, session string, productID int64) (*Store, error) {
	p, err := s.catalog.GetByID(productID)
	if err != nil {
		return nil, err
	}
	store, err := Open(ctx, s.storage, session)
	if err != nil {
		return nil, err
	}
	if err := store.AddOrIncrement(ctx, p); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) Increment(ctx context.Context, session string, productID int64) (*Store, error) {
	return s.mutate(ctx, session, func(store *Store) error {
		return store.Increment(ctx, productID)
	})
}

func (s *Service) Decrement(ctx context.Context, session string, productID int64) (*Store, error) {
	return s.mutate(ctx, session, func(store *Store) error {
		return store.Decrement(ctx, productID)
	})
}

func (s *Service) Remove(ctx context.Context, session string, productID int64) (*Store, error) {
	return s.mutate(ctx, session, func(store *Store) error {
		return store.Remove(ctx, productID)
	})
}

func (s *Service) Clear(ctx context.Context, session string) (*Store, error) {
	return s.mutate(ctx, session, func(store *Store) error {
		return store.Clear(ctx)
	})
}

func (s *Service) mutate(ctx context.Context, session string, op func(*Store) error) (*Store, error) {
	store, err := Open(ctx, s.storage, session)
	if err != nil {
		return nil, err
	}
	if err := op(store); err != nil {
		return nil, err
	}
	return store, nil
}
