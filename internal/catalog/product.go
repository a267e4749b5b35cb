package catalog

import (
	"time"

	"github.com/hogarclick/storefront-backend/internal/pricing"
)

// Product is the canonical catalog shape. Every row and payload mapping
// funnels through this struct; the cart copies from it at add-time and never
// holds a live reference. The identifier is always the catalog row id.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	DescriptionLarge *string   `json:"descriptionLarge,omitempty"`
	Price            float64   `json:"price"`
	SalePrice        *float64  `json:"salePrice,omitempty"`
	OnSale           bool      `json:"onSale"`
	Installments     int       `json:"installments"`
	Stock            int       `json:"stock"`
	Category         string    `json:"category"`
	Subcategory      *string   `json:"subcategory,omitempty"`
	ImageURL         string    `json:"imageUrl"`
	Image1URL        *string   `json:"image1Url,omitempty"`
	Image2URL        *string   `json:"image2Url,omitempty"`
	Image3URL        *string   `json:"image3Url,omitempty"`
	Featured         bool      `json:"featured"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Pricing exposes the fields the pricing resolver needs.
func (p Product) Pricing() pricing.Snapshot {
	return pricing.Snapshot{
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		OnSale:       p.OnSale,
		Installments: p.Installments,
	}
}

// InStock is display-only; an out-of-stock product can still be added to a
// cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}
