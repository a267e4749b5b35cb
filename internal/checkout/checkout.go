package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// State of the checkout walk. Transitions are forward-only via explicit
// continue actions, with a single back edge from Payment to CustomerDetails.
type State string

const (
	StateReviewCart      State = "review_cart"
	StateCustomerDetails State = "customer_details"
	StatePayment         State = "payment"
	StateConfirmation    State = "confirmation"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrEmptyCart         = errors.New("cart is empty")
)

// ShippingAddress is the optional second address block captured when the
// "ship to a different address" toggle is set at submission time.
type ShippingAddress struct {
	Country    string `json:"country"`
	Province   string `json:"province"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postalCode"`
}

// CustomerDetails is the details-step payload. Validation is presence-only:
// every required field must be non-empty, nothing about its format is
// checked here.
type CustomerDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Document   string `json:"document"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	Province   string `json:"province"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postalCode"`

	ShipToDifferentAddress bool             `json:"shipToDifferentAddress"`
	Shipping               *ShippingAddress `json:"shipping,omitempty"`
}

// ValidationError lists the required fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (d CustomerDetails) validate() error {
	required := []struct{ name, value string }{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"email", d.Email},
		{"phone", d.Phone},
		{"country", d.Country},
		{"province", d.Province},
		{"city", d.City},
		{"street", d.Street},
		{"number", d.Number},
		{"postalCode", d.PostalCode},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if d.ShipToDifferentAddress {
		if d.Shipping == nil {
			missing = append(missing, "shipping")
		} else {
			shippingRequired := []struct{ name, value string }{
				{"shipping.country", d.Shipping.Country},
				{"shipping.province", d.Shipping.Province},
				{"shipping.city", d.Shipping.City},
				{"shipping.street", d.Shipping.Street},
				{"shipping.number", d.Shipping.Number},
				{"shipping.postalCode", d.Shipping.PostalCode},
			}
			for _, f := range shippingRequired {
				if strings.TrimSpace(f.value) == "" {
					missing = append(missing, f.name)
				}
			}
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (d CustomerDetails) fullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// address flattens the effective delivery address into one line, preferring
// the alternate shipping block when the toggle is set.
func (d CustomerDetails) address() (line, postalCode string) {
	if d.ShipToDifferentAddress && d.Shipping != nil {
		s := d.Shipping
		return fmt.Sprintf("%s %s, %s, %s", s.Street, s.Number, s.City, s.Province), s.PostalCode
	}
	return fmt.Sprintf("%s %s, %s, %s", d.Street, d.Number, d.City, d.Province), d.PostalCode
}
