package pricing

// DefaultInstallments is the plan applied when a product carries no
// installment count of its own (absent, zero or negative).
const DefaultInstallments = 12

// Snapshot carries the pricing-relevant fields of a product or cart line.
// Catalog products and cart lines both convert to it, so the same math runs
// on live catalog data and on denormalized cart copies.
type Snapshot struct {
	Price        float64
	SalePrice    *float64
	OnSale       bool
	Installments int
}

// EffectiveUnitPrice is the price actually charged per unit: the sale price
// when the sale flag is set and a sale price is present, the regular price
// otherwise.
func (s Snapshot) EffectiveUnitPrice() float64 {
	if s.OnSale && s.SalePrice != nil {
		return *s.SalePrice
	}
	return s.Price
}

// InstallmentCount normalizes the configured plan, guarding against a zero
// divisor.
func (s Snapshot) InstallmentCount() int {
	if s.Installments <= 0 {
		return DefaultInstallments
	}
	return s.Installments
}

// InstallmentUnitPrice spreads the effective unit price evenly across the
// installment plan. Display only; never rounded here.
func (s Snapshot) InstallmentUnitPrice() float64 {
	return s.EffectiveUnitPrice() / float64(s.InstallmentCount())
}

// LineTotal prices qty units at the effective unit price.
func LineTotal(s Snapshot, qty int) float64 {
	return s.EffectiveUnitPrice() * float64(qty)
}
