package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/hogarclick/storefront-backend/internal/cart"
	"github.com/hogarclick/storefront-backend/internal/order"
)

// OrderBackend receives the finished order snapshot. Satisfied by
// order.Service.
type OrderBackend interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
}

// Checkout is one session's walk through the flow. The idempotency key is
// minted once when the details step succeeds and reused for every payment
// retry, so a double submit cannot produce two orders.
type Checkout struct {
	State          State           `json:"state"`
	Details        CustomerDetails `json:"details"`
	IdempotencyKey string          `json:"-"`
	Order          *order.Order    `json:"order,omitempty"`
}

// Orchestrator drives checkouts forward. State transitions live here; cart
// and order mutation are delegated to their own services.
type Orchestrator struct {
	sessions *Manager
	carts    *cart.Service
	orders   OrderBackend
}

func NewOrchestrator(sessions *Manager, carts *cart.Service, orders OrderBackend) *Orchestrator {
	return &Orchestrator{sessions: sessions, carts: carts, orders: orders}
}

// Start opens a fresh checkout at the cart review step. An empty cart
// cannot enter checkout.
func (o *Orchestrator) Start(ctx context.Context, session string) (Checkout, error) {
	store, err := o.carts.Get(ctx, session)
	if err != nil {
		return Checkout{}, err
	}
	if store.ItemCount() == 0 {
		return Checkout{}, ErrEmptyCart
	}
	ck := &Checkout{State: StateReviewCart}
	o.sessions.put(session, ck)
	return *ck, nil
}

// Get returns the current checkout for the session, if any.
func (o *Orchestrator) Get(session string) (Checkout, bool) {
	ck, ok := o.sessions.get(session)
	if !ok {
		return Checkout{}, false
	}
	return *ck, true
}

// Continue moves from the cart review step to the details form. It is the
// only transition out of ReviewCart.
func (o *Orchestrator) Continue(session string) (Checkout, error) {
	return o.transition(session, func(ck *Checkout) error {
		if ck.State != StateReviewCart {
			return ErrInvalidTransition
		}
		ck.State = StateCustomerDetails
		return nil
	})
}

// SubmitDetails validates the details form and, on success, advances to
// Payment. The idempotency key survives a Back/resubmit round trip.
func (o *Orchestrator) SubmitDetails(session string, details CustomerDetails) (Checkout, error) {
	return o.transition(session, func(ck *Checkout) error {
		if ck.State != StateCustomerDetails {
			return ErrInvalidTransition
		}
		if err := details.validate(); err != nil {
			return err
		}
		ck.Details = details
		if ck.IdempotencyKey == "" {
			ck.IdempotencyKey = uuid.NewString()
		}
		ck.State = StatePayment
		return nil
	})
}

// Back returns from Payment to the details form. No other step has a back
// edge.
func (o *Orchestrator) Back(session string) (Checkout, error) {
	return o.transition(session, func(ck *Checkout) error {
		if ck.State != StatePayment {
			return ErrInvalidTransition
		}
		ck.State = StateCustomerDetails
		return nil
	})
}

// CompletePayment snapshots the cart at effective prices, submits the order
// and clears the cart. On backend failure the checkout stays in Payment and
// the cart is left untouched, so the attempt can be retried with the same
// idempotency key.
func (o *Orchestrator) CompletePayment(ctx context.Context, session string) (Checkout, error) {
	ck, ok := o.sessions.get(session)
	if !ok || ck.State != StatePayment {
		return Checkout{}, ErrInvalidTransition
	}

	store, err := o.carts.Get(ctx, session)
	if err != nil {
		return *ck, err
	}
	lines := store.Lines()
	if len(lines) == 0 {
		return *ck, ErrEmptyCart
	}

	created, err := o.orders.Create(ctx, buildOrder(ck, lines, store.TotalPrice()))
	if err != nil {
		return *ck, err
	}

	if _, err := o.carts.Clear(ctx, session); err != nil {
		return *ck, err
	}
	ck.Order = &created
	ck.State = StateConfirmation
	// the confirmation snapshot travels in the return value; the finished
	// checkout is evicted so the manager stays bounded
	o.sessions.remove(session)
	return *ck, nil
}

func (o *Orchestrator) transition(session string, step func(*Checkout) error) (Checkout, error) {
	ck, ok := o.sessions.get(session)
	if !ok {
		return Checkout{}, ErrInvalidTransition
	}
	if err := step(ck); err != nil {
		return *ck, err
	}
	return *ck, nil
}

func buildOrder(ck *Checkout, lines []cart.Line, total float64) order.Order {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:    l.ProductID,
			Name:         l.Name,
			Price:        l.Pricing().EffectiveUnitPrice(),
			Quantity:     l.Quantity,
			Installments: l.Pricing().InstallmentCount(),
			ImageURL:     l.ImageURL,
		})
	}
	address, postalCode := ck.Details.address()
	return order.Order{
		IdempotencyKey: ck.IdempotencyKey,
		CustomerName:   ck.Details.fullName(),
		CustomerEmail:  ck.Details.Email,
		CustomerDoc:    ck.Details.Document,
		CustomerPhone:  ck.Details.Phone,
		Address:        address,
		PostalCode:     postalCode,
		Recipient:      ck.Details.fullName(),
		Items:          items,
		Total:          total,
	}
}
