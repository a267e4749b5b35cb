package cart

import (
	"errors"

	"github.com/hogarclick/storefront-backend/internal/catalog"
	"github.com/hogarclick/storefront-backend/internal/pricing"
)

var (
	ErrLineNotFound = errors.New("cart line not found")
)

// Line is one row of the cart: a denormalized snapshot of the product taken
// at add-time plus a quantity. The snapshot lets the cart render without a
// live catalog fetch, even when the product has since changed or been
// deleted. Quantity is always >= 1; a zero quantity means the line is gone.
type Line struct {
	ProductID    int64    `json:"productId"`
	Name         string   `json:"name"`
	ImageURL     string   `json:"imageUrl"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"salePrice,omitempty"`
	OnSale       bool     `json:"onSale"`
	Installments int      `json:"installments"`
	Quantity     int      `json:"quantity"`
}

func newLine(p catalog.Product) Line {
	return Line{
		ProductID:    p.ID,
		Name:         p.Name,
		ImageURL:     p.ImageURL,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		OnSale:       p.OnSale,
		Installments: p.Installments,
		Quantity:     1,
	}
}

// Pricing exposes the denormalized fields to the pricing resolver.
func (l Line) Pricing() pricing.Snapshot {
	return pricing.Snapshot{
		Price:        l.Price,
		SalePrice:    l.SalePrice,
		OnSale:       l.OnSale,
		Installments: l.Installments,
	}
}

// Total prices the line at its effective unit price.
func (l Line) Total() float64 {
	return pricing.LineTotal(l.Pricing(), l.Quantity)
}
