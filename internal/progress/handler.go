package progress

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sessions", h.createSession)
	app.Post("/api/v1/progress", h.createProgress)
	app.Get("/api/v1/progress/:userId/summary", h.getSummary)
	app.Get("/api/v1/progress/:userId", h.getProgress)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_id": NewUserID()})
}

func (h *Handler) createProgress(c *fiber.Ctx) error {
	rec := new(Record)
	if err := c.BodyParser(rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	saved, err := h.service.Record(c.UserContext(), *rec)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *Handler) getProgress(c *fiber.Ctx) error {
	records, err := h.service.History(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(records)
}

func (h *Handler) getSummary(c *fiber.Ctx) error {
	sum, err := h.service.Summary(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sum)
}

func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrMissingUserID) || errors.Is(err, ErrScoreRange) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}
