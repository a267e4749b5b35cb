package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader fixes the column order for bulk export/import. Import accepts
// exactly this layout.
var csvHeader = []string{
	"id", "name", "description", "description_large",
	"price", "sale_price", "on_sale", "installments", "stock",
	"category", "subcategory",
	"image_url", "image1_url", "image2_url", "image3_url",
	"featured",
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteCSV streams the catalog as CSV, header first.
func WriteCSV(w io.Writer, products []Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		salePrice := ""
		if p.SalePrice != nil {
			salePrice = strconv.FormatFloat(*p.SalePrice, 'f', -1, 64)
		}
		rec := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Description,
			strOrEmpty(p.DescriptionLarge),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			salePrice,
			strconv.FormatBool(p.OnSale),
			strconv.Itoa(p.Installments),
			strconv.Itoa(p.Stock),
			p.Category,
			strOrEmpty(p.Subcategory),
			p.ImageURL,
			strOrEmpty(p.Image1URL),
			strOrEmpty(p.Image2URL),
			strOrEmpty(p.Image3URL),
			strconv.FormatBool(p.Featured),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a bulk import in the WriteCSV layout. Row ids are kept when
// present so an export/import round trip preserves identifiers.
func ReadCSV(r io.Reader) ([]Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv import: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("csv import: column %d is %q, want %q", i, header[i], col)
		}
	}

	out := make([]Product, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv import: %w", err)
		}

		p, err := productFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv import line %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func productFromRecord(rec []string) (Product, error) {
	var p Product
	var err error

	if rec[0] != "" {
		if p.ID, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
			return Product{}, fmt.Errorf("bad id %q", rec[0])
		}
	}
	p.Name = rec[1]
	p.Description = rec[2]
	p.DescriptionLarge = ptrOrNil(rec[3])
	if p.Price, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return Product{}, fmt.Errorf("bad price %q", rec[4])
	}
	if rec[5] != "" {
		v, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return Product{}, fmt.Errorf("bad sale_price %q", rec[5])
		}
		p.SalePrice = &v
	}
	if p.OnSale, err = strconv.ParseBool(rec[6]); err != nil {
		return Product{}, fmt.Errorf("bad on_sale %q", rec[6])
	}
	if p.Installments, err = strconv.Atoi(rec[7]); err != nil {
		return Product{}, fmt.Errorf("bad installments %q", rec[7])
	}
	if p.Stock, err = strconv.Atoi(rec[8]); err != nil {
		return Product{}, fmt.Errorf("bad stock %q", rec[8])
	}
	p.Category = rec[9]
	p.Subcategory = ptrOrNil(rec[10])
	p.ImageURL = rec[11]
	p.Image1URL = ptrOrNil(rec[12])
	p.Image2URL = ptrOrNil(rec[13])
	p.Image3URL = ptrOrNil(rec[14])
	if p.Featured, err = strconv.ParseBool(rec[15]); err != nil {
		return Product{}, fmt.Errorf("bad featured %q", rec[15])
	}
	return p, nil
}
