package cart

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/hogarclick/storefront-backend/internal/catalog"
	"github.com/hogarclick/storefront-backend/internal/pricing"
)

// SessionHeader identifies the caller's cart. The storefront client
// generates one id per browser and sends it on every cart request.
const SessionHeader = "X-Cart-Session"

type Handler struct {
	service *Service
	locale  language.Tag
}

func NewHandler(service *Service, locale language.Tag) *Handler {
	return &Handler{service: service, locale: locale}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Post("/api/v1/cart/items/:id/increment", h.incrementItem)
	app.Post("/api/v1/cart/items/:id/decrement", h.decrementItem)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type lineView struct {
	Line
	InstallmentCount        int     `json:"installmentCount"`
	InstallmentPrice        float64 `json:"installmentPrice"`
	LineTotal               float64 `json:"lineTotal"`
	DisplayInstallmentPrice string  `json:"displayInstallmentPrice"`
	DisplayLineTotal        string  `json:"displayLineTotal"`
}

type cartView struct {
	Lines             []lineView `json:"lines"`
	ItemCount         int        `json:"itemCount"`
	TotalPrice        float64    `json:"totalPrice"`
	DisplayTotalPrice string     `json:"displayTotalPrice"`
}

// view renders one snapshot of the store, the single source of truth every
// client surface (header badge, menu badge, side panel) draws from.
func (h *Handler) view(store *Store) cartView {
	lines := store.Lines()
	out := cartView{
		Lines:             make([]lineView, 0, len(lines)),
		ItemCount:         store.ItemCount(),
		TotalPrice:        store.TotalPrice(),
		DisplayTotalPrice: pricing.DisplayPrice(h.locale, store.TotalPrice()),
	}
	for _, l := range lines {
		snap := l.Pricing()
		out.Lines = append(out.Lines, lineView{
			Line:                    l,
			InstallmentCount:        snap.InstallmentCount(),
			InstallmentPrice:        snap.InstallmentUnitPrice(),
			LineTotal:               l.Total(),
			DisplayInstallmentPrice: pricing.DisplayPrice(h.locale, snap.InstallmentUnitPrice()),
			DisplayLineTotal:        pricing.DisplayPrice(h.locale, l.Total()),
		})
	}
	return out
}

func session(c *fiber.Ctx) string {
	return c.Get(SessionHeader)
}

var errMissingSession = errors.New("missing " + SessionHeader + " header")

func requireSession(c *fiber.Ctx) (string, error) {
	s := session(c)
	if s == "" {
		return "", errMissingSession
	}
	return s, nil
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	store, err := h.service.Get(c.Context(), sess)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(store))
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	store, err := h.service.AddProduct(c.Context(), sess, payload.ProductID)
	if err != nil {
		if err == catalog.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(store))
}

func (h *Handler) itemOp(c *fiber.Ctx, op func(ctx *fiber.Ctx, sess string, id int64) (*Store, error)) error {
	sess, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	store, err := op(c, sess, id)
	if err != nil {
		if err == ErrLineNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart line not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(store))
}

func (h *Handler) incrementItem(c *fiber.Ctx) error {
	return h.itemOp(c, func(ctx *fiber.Ctx, sess string, id int64) (*Store, error) {
		return h.service.Increment(ctx.Context(), sess, id)
	})
}

func (h *Handler) decrementItem(c *fiber.Ctx) error {
	return h.itemOp(c, func(ctx *fiber.Ctx, sess string, id int64) (*Store, error) {
		return h.service.Decrement(ctx.Context(), sess, id)
	})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	return h.itemOp(c, func(ctx *fiber.Ctx, sess string, id int64) (*Store, error) {
		return h.service.Remove(ctx.Context(), sess, id)
	})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sess, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := h.service.Clear(c.Context(), sess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
