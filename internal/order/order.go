package order

import "time"

// Status values an order moves through. The storefront only ever writes
// StatusPending; later transitions belong to the admin panel.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

// Item is one order line, denormalized the same way a cart line is. Price is
// the effective unit price at checkout time: the order is a snapshot and is
// never mutated by the storefront after creation.
type Item struct {
	ProductID    int64   `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Installments int     `json:"installments"`
	ImageURL     string  `json:"imageUrl"`
}

// Order is the checkout snapshot persisted for fulfilment.
type Order struct {
	ID             int64     `json:"orderId"`
	IdempotencyKey string    `json:"idempotencyKey"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerDoc    string    `json:"customerDoc"`
	CustomerPhone  string    `json:"customerPhone"`
	Address        string    `json:"address"`
	PostalCode     string    `json:"postalCode"`
	Recipient      string    `json:"recipient"`
	Items          []Item    `json:"items"`
	Total          float64   `json:"total"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
