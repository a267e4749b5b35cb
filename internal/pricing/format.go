package pricing

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale drives grouping and decimal separators for displayed
// amounts. The store is Argentine, so amounts render as "1.234,50".
var DefaultLocale = language.MustParse("es-AR")

// FormatAmount renders v with exactly two fraction digits using the
// locale's grouping and decimal separators. Rounding happens here and only
// here; internal accumulation stays at full float64 precision.
func FormatAmount(tag language.Tag, v float64) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// DisplayPrice is FormatAmount with a currency sign, matching the storefront
// price labels.
func DisplayPrice(tag language.Tag, v float64) string {
	return fmt.Sprintf("$%s", FormatAmount(tag, v))
}
