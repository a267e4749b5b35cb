package consult

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hogarclick/storefront-backend/internal/catalog"
)

type Handler struct {
	catalog *catalog.Service
	phone   string
}

func NewHandler(catalogService *catalog.Service, phone string) *Handler {
	return &Handler{catalog: catalogService, phone: phone}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/product/:id/consult", h.getConsultLink)
}

func (h *Handler) getConsultLink(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	p, err := h.catalog.GetByID(id)
	if err == catalog.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": Message(p),
		"link":    Link(h.phone, p),
	})
}
