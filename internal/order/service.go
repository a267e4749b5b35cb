package order

import (
	"context"
	"errors"
)

// Service provides business logic for orders.
type Service struct {
	repo  Repository
	guard Guard
}

func NewService(repo Repository, guard Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Create persists a new order snapshot. When the order carries an
// idempotency key and that key was already used, the original order is
// returned instead of creating a duplicate.
func (s *Service) Create(ctx context.Context, o Order) (Order, error) {
	if len(o.Items) == 0 {
		return Order{}, errors.New("empty order")
	}
	if o.Status == "" {
		o.Status = StatusPending
	}

	if o.IdempotencyKey != "" && s.guard != nil {
		locked, err := s.guard.TryLock(ctx, o.IdempotencyKey)
		if err != nil {
			return Order{}, err
		}
		if !locked {
			existing, err := s.repo.GetByKey(o.IdempotencyKey)
			if err == nil {
				return existing, nil
			}
			if err != ErrNotFound {
				return Order{}, err
			}
			// lock holder never finished writing; fall through and create
		}
	}

	return s.repo.Create(o)
}

func (s *Service) GetByID(id int64) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func (s *Service) UpdateStatus(id int64, status string) (Order, error) {
	switch status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCancelled:
	default:
		return Order{}, errors.New("invalid status")
	}
	return s.repo.UpdateStatus(id, status)
}
