package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hogarclick/storefront-backend/internal/cart"
)

// Handler exposes the checkout flow. Every route is keyed by the same
// session header the cart uses.
type Handler struct {
	orchestrator *Orchestrator
}

func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout", h.getCheckout)
	app.Post("/api/v1/checkout/start", h.start)
	app.Post("/api/v1/checkout/continue", h.continueToDetails)
	app.Post("/api/v1/checkout/details", h.submitDetails)
	app.Post("/api/v1/checkout/back", h.back)
	app.Post("/api/v1/checkout/payment", h.completePayment)
}

func (h *Handler) getCheckout(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, ok := h.orchestrator.Get(session)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no checkout in progress"})
	}
	return c.JSON(ck)
}

func (h *Handler) start(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, err := h.orchestrator.Start(c.Context(), session)
	if errors.Is(err, ErrEmptyCart) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "cart is empty"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(ck)
}

func (h *Handler) continueToDetails(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, err := h.orchestrator.Continue(session)
	return respond(c, ck, err)
}

func (h *Handler) submitDetails(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	details := new(CustomerDetails)
	if err := c.BodyParser(details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, err := h.orchestrator.SubmitDetails(session, *details)

	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation failed",
			"fields":  verr.Fields,
		})
	}
	return respond(c, ck, err)
}

func (h *Handler) back(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, err := h.orchestrator.Back(session)
	return respond(c, ck, err)
}

func (h *Handler) completePayment(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ck, err := h.orchestrator.CompletePayment(c.Context(), session)
	if err != nil && !errors.Is(err, ErrInvalidTransition) {
		// payment/order failure: report it but keep the checkout where it is
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":  err.Error(),
			"checkout": ck,
		})
	}
	return respond(c, ck, err)
}

func respond(c *fiber.Ctx, ck Checkout, err error) error {
	if errors.Is(err, ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ck)
}

var errMissingSession = errors.New("missing " + cart.SessionHeader + " header")

func requireSession(c *fiber.Ctx) (string, error) {
	session := c.Get(cart.SessionHeader)
	if session == "" {
		return "", errMissingSession
	}
	return session, nil
}
