package catalog

import (
	"bytes"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	in := seedProducts()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d products, got %d", len(in), len(out))
	}
	for i := range in {
		a, b := in[i], out[i]
		if a.ID != b.ID || a.Name != b.Name || a.Price != b.Price || a.OnSale != b.OnSale {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, a, b)
		}
		if (a.SalePrice == nil) != (b.SalePrice == nil) {
			t.Fatalf("row %d sale price presence mismatch", i)
		}
		if a.SalePrice != nil && *a.SalePrice != *b.SalePrice {
			t.Fatalf("row %d sale price %v vs %v", i, *a.SalePrice, *b.SalePrice)
		}
		if (a.Subcategory == nil) != (b.Subcategory == nil) {
			t.Fatalf("row %d subcategory presence mismatch", i)
		}
	}
}

func TestReadCSV_RejectsBadHeader(t *testing.T) {
	bad := "foo,bar\n1,2\n"
	if _, err := ReadCSV(strings.NewReader(bad)); err == nil {
		t.Fatal("expected header error")
	}
}

func TestReadCSV_RejectsBadPrice(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	buf.WriteString("1,Thing,d,,abc,,false,12,1,Cat,,img,,,,false\n")
	if _, err := ReadCSV(&buf); err == nil {
		t.Fatal("expected price parse error")
	}
}
