package catalog

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/hogarclick/storefront-backend/internal/logging"
	"github.com/hogarclick/storefront-backend/internal/pricing"
)

type Handler struct {
	service *Service
	locale  language.Tag
	log     *slog.Logger
}

func NewHandler(service *Service, locale language.Tag) *Handler {
	return &Handler{service: service, locale: locale, log: logging.New("catalog")}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Get("/api/v1/categories", h.getCategories)
	app.Get("/api/v1/categories/:category/subcategories", h.getSubcategories)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/product/:id", h.updateProduct)
	app.Delete("/api/v1/product/:id", h.deleteProduct)
	app.Get("/api/v1/products/export", h.exportProducts)
	app.Post("/api/v1/products/import", h.importProducts)
}

// productView decorates a product with resolved prices so clients never
// re-implement the sale/installment rules.
type productView struct {
	Product
	EffectivePrice          float64 `json:"effectivePrice"`
	InstallmentCount        int     `json:"installmentCount"`
	InstallmentPrice        float64 `json:"installmentPrice"`
	DisplayPrice            string  `json:"displayPrice"`
	DisplayInstallmentPrice string  `json:"displayInstallmentPrice"`
}

func (h *Handler) view(p Product) productView {
	snap := p.Pricing()
	return productView{
		Product:                 p,
		EffectivePrice:          snap.EffectiveUnitPrice(),
		InstallmentCount:        snap.InstallmentCount(),
		InstallmentPrice:        snap.InstallmentUnitPrice(),
		DisplayPrice:            pricing.DisplayPrice(h.locale, snap.EffectiveUnitPrice()),
		DisplayInstallmentPrice: pricing.DisplayPrice(h.locale, snap.InstallmentUnitPrice()),
	}
}

func (h *Handler) views(products []Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, h.view(p))
	}
	return out
}

// catalogUnavailable renders the degraded-read response: an empty result set
// plus a retry hint. Catalog failures are never fatal.
func (h *Handler) catalogUnavailable(c *fiber.Ctx, err error) error {
	h.log.Error("catalog unavailable", "error", err, "path", c.Path())
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message":   "catalog unavailable, please retry",
		"retriable": true,
		"products":  []productView{},
	})
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	subcategory := c.Query("subcategory")

	var (
		products []Product
		err      error
	)
	switch {
	case category != "" && subcategory != "":
		products, err = h.service.ListByCategoryAndSubcategory(category, subcategory)
	case category != "":
		products, err = h.service.ListByCategory(category)
	default:
		products, err = h.service.List()
	}
	if err != nil {
		return h.catalogUnavailable(c, err)
	}
	return c.JSON(h.views(products))
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	products, err := h.service.Search(term)
	if err != nil {
		return h.catalogUnavailable(c, err)
	}
	return c.JSON(fiber.Map{
		"query":    term,
		"products": h.views(products),
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if err != nil {
		return h.catalogUnavailable(c, err)
	}
	return c.JSON(h.view(p))
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories()
	if err != nil {
		return h.catalogUnavailable(c, err)
	}
	return c.JSON(categories)
}

func (h *Handler) getSubcategories(c *fiber.Ctx) error {
	subs, err := h.service.Subcategories(c.Params("category"))
	if err != nil {
		return h.catalogUnavailable(c, err)
	}
	return c.JSON(subs)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.SalePrice != nil && *p.SalePrice < 0 {
		errs["salePrice"] = "salePrice must be >= 0"
	}
	if p.Installments < 0 {
		errs["installments"] = "installments must be >= 0"
	}
	if strings.TrimSpace(p.Category) == "" {
		errs["category"] = "category is required"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}
	if p.Installments == 0 {
		p.Installments = pricing.DefaultInstallments
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.view(created))
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}
	if p.Installments == 0 {
		p.Installments = pricing.DefaultInstallments
	}

	updated, err := h.service.Update(id, *p)
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(updated))
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// exportProducts streams the catalog as CSV (default) or JSON.
func (h *Handler) exportProducts(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return h.catalogUnavailable(c, err)
	}

	if c.Query("format") == "json" {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.json"`)
		return c.JSON(products)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}

// importProducts replaces the whole catalog from a CSV or JSON body.
func (h *Handler) importProducts(c *fiber.Ctx) error {
	var (
		products []Product
		err      error
	)
	if strings.Contains(c.Get(fiber.HeaderContentType), "text/csv") {
		products, err = ReadCSV(bytes.NewReader(c.Body()))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	} else {
		if err := c.BodyParser(&products); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	for i := range products {
		if ves := validateProductPayload(&products[i]); len(ves) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid product in import",
				"index":   i,
				"errors":  ves,
			})
		}
		if products[i].Installments == 0 {
			products[i].Installments = pricing.DefaultInstallments
		}
	}

	if err := h.service.ReplaceAll(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.log.Info("catalog imported", "count", len(products))
	return c.JSON(fiber.Map{"imported": len(products)})
}
