package pricing

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func f(v float64) *float64 { return &v }

func TestEffectiveUnitPrice(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{"regular price when not on sale", Snapshot{Price: 100}, 100},
		{"sale price ignored when flag off", Snapshot{Price: 100, SalePrice: f(80)}, 100},
		{"sale price when on sale", Snapshot{Price: 100, SalePrice: f(80), OnSale: true}, 80},
		{"falls back to price when sale price absent", Snapshot{Price: 100, OnSale: true}, 100},
	}
	for _, tc := range cases {
		if got := tc.snap.EffectiveUnitPrice(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInstallmentCount_DefaultsGuardDivisionByZero(t *testing.T) {
	for _, n := range []int{0, -3} {
		s := Snapshot{Price: 120, Installments: n}
		if got := s.InstallmentCount(); got != DefaultInstallments {
			t.Fatalf("installments=%d: count = %d, want %d", n, got, DefaultInstallments)
		}
		if got := s.InstallmentUnitPrice(); got != 10 {
			t.Fatalf("installments=%d: unit price = %v, want 10", n, got)
		}
	}

	s := Snapshot{Price: 90, Installments: 3}
	if got := s.InstallmentUnitPrice(); got != 30 {
		t.Fatalf("explicit plan: got %v, want 30", got)
	}
}

func TestInstallmentUnitPrice_UsesEffectivePrice(t *testing.T) {
	s := Snapshot{Price: 240, SalePrice: f(120), OnSale: true, Installments: 12}
	if got := s.InstallmentUnitPrice(); got != 10 {
		t.Fatalf("got %v, want 10", got)
	}
}

func TestLineTotal(t *testing.T) {
	s := Snapshot{Price: 50, SalePrice: f(40), OnSale: true}
	if got := LineTotal(s, 3); got != 120 {
		t.Fatalf("got %v, want 120", got)
	}
}

func TestFormatAmount_LocaleSeparators(t *testing.T) {
	// es-AR groups with period and uses a comma for decimals.
	if got := FormatAmount(DefaultLocale, 1234.5); got != "1.234,50" {
		t.Fatalf("es-AR: got %q", got)
	}
	// en-US is the mirror image.
	if got := FormatAmount(language.AmericanEnglish, 1234.5); got != "1,234.50" {
		t.Fatalf("en-US: got %q", got)
	}
	// always exactly two fraction digits
	if got := FormatAmount(language.AmericanEnglish, 7.0); got != "7.00" {
		t.Fatalf("whole amount: got %q", got)
	}
}

func TestDisplayPrice(t *testing.T) {
	got := DisplayPrice(DefaultLocale, 99.9)
	if !strings.HasPrefix(got, "$") || !strings.HasSuffix(got, "99,90") {
		t.Fatalf("got %q", got)
	}
}
