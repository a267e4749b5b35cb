package consult

import (
	"fmt"
	"net/url"

	"github.com/hogarclick/storefront-backend/internal/catalog"
)

const sendEndpoint = "https://api.whatsapp.com/send"

// Message renders the prefilled consultation text for a product. Prices are
// the effective (sale-aware) values, with the installment breakdown the
// product card shows.
func Message(p catalog.Product) string {
	snap := p.Pricing()
	return fmt.Sprintf(
		"Hola, quiero consultar sobre el producto *%s*, que tiene un precio de *$%.2f* en *%d cuotas de $%.2f*. Muchas gracias!",
		p.Name,
		snap.EffectiveUnitPrice(),
		snap.InstallmentCount(),
		snap.InstallmentUnitPrice(),
	)
}

// Link builds the wa.me style deep link that opens a chat with the store
// number and the consultation message prefilled.
func Link(phone string, p catalog.Product) string {
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", Message(p))
	return sendEndpoint + "?" + q.Encode()
}
