package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/hogarclick/storefront-backend/internal/catalog"
	"github.com/hogarclick/storefront-backend/internal/pricing"
)

func makeTestApp() (*fiber.App, *InMemoryStorage) {
	storage := NewInMemoryStorage()
	catalogService := catalog.NewService(catalog.NewInMemoryRepository([]catalog.Product{
		productA, productB,
	}))
	handler := NewHandler(NewService(storage, catalogService), pricing.DefaultLocale)
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, storage
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, cartView) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(SessionHeader, "browser-1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var view cartView
	if res.StatusCode == fiber.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res.StatusCode, view
}

func TestCartRoutes_MissingSessionRejected(t *testing.T) {
	app, _ := makeTestApp()
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", res.StatusCode)
	}
}

func TestCartRoutes_FullFlow(t *testing.T) {
	app, _ := makeTestApp()

	// empty cart on first read
	code, view := doJSON(t, app, "GET", "/api/v1/cart", "")
	if code != fiber.StatusOK || view.ItemCount != 0 {
		t.Fatalf("expected empty cart, code=%d count=%d", code, view.ItemCount)
	}

	// add A twice: one line, quantity 2
	doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1}`)
	_, view = doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1}`)
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 {
		t.Fatalf("expected one line qty 2, got %+v", view.Lines)
	}

	// add B: totals use the sale price
	_, view = doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":2}`)
	if view.TotalPrice != 240 {
		t.Fatalf("expected total 240, got %v", view.TotalPrice)
	}
	if view.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", view.ItemCount)
	}

	// decrement A down to 1, then again (no-op)
	doJSON(t, app, "POST", "/api/v1/cart/items/1/decrement", "")
	_, view = doJSON(t, app, "POST", "/api/v1/cart/items/1/decrement", "")
	if view.Lines[0].Quantity != 1 {
		t.Fatalf("decrement floor broken: %+v", view.Lines[0])
	}

	// remove B
	_, view = doJSON(t, app, "DELETE", "/api/v1/cart/items/2", "")
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line after remove, got %d", len(view.Lines))
	}

	// clear
	req := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req.Header.Set(SessionHeader, "browser-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 on clear, got %d", res.StatusCode)
	}
	_, view = doJSON(t, app, "GET", "/api/v1/cart", "")
	if view.ItemCount != 0 || view.TotalPrice != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", view)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	app, _ := makeTestApp()
	code, _ := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":404}`)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestCorruptPersistedCartServesEmpty(t *testing.T) {
	app, storage := makeTestApp()
	storage.Seed("browser-1", "not-json", "7", "700")

	code, view := doJSON(t, app, "GET", "/api/v1/cart", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if view.ItemCount != 0 || len(view.Lines) != 0 {
		t.Fatalf("expected empty cart from corrupt storage, got %+v", view)
	}
}

func TestLineViewExposesInstallments(t *testing.T) {
	app, _ := makeTestApp()
	_, view := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":2}`)
	l := view.Lines[0]
	// B has no installment plan of its own: defaults to 12 over the sale price
	if l.InstallmentCount != 12 {
		t.Fatalf("expected 12 installments, got %d", l.InstallmentCount)
	}
	if l.InstallmentPrice != 40.0/12 {
		t.Fatalf("unexpected installment price %v", l.InstallmentPrice)
	}
}
