package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service     *Service
	allowWrites bool
}

// NewHandler builds the catalog handler. Product creation is only routed
// through when allowWrites is set.
func NewHandler(service *Service, allowWrites bool) *Handler {
	return &Handler{service: service, allowWrites: allowWrites}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Get("/api/v1/products/recommendations", h.recommendProducts)
	app.Get("/api/v1/products/filters", h.getFilterOptions)
	app.Get("/api/v1/products", h.getProducts)
	app.Post("/api/v1/products", h.createProduct)
}

// getProducts treats every query parameter as an exact-match field filter.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	products, err := h.service.Search(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) recommendProducts(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	limit := 0
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "limit must be a non-negative integer"})
		}
		limit = v
	}
	recs, err := h.service.Recommend(c.UserContext(), f, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recs)
}

func (h *Handler) getFilterOptions(c *fiber.Ctx) error {
	return c.JSON(FilterOptions())
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	if !h.allowWrites {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "product writes are disabled"})
	}
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), *p)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func parseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter
	if v := c.Query("maxBudget"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("maxBudget must be a number")
		}
		f.MaxBudget = &b
	}
	if v := c.Query("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("minRating must be a number")
		}
		f.MinRating = &r
	}
	f.SkinType = strings.TrimSpace(c.Query("skinType"))
	f.Categories = queryValues(c, "category")
	f.Concerns = queryValues(c, "concern")
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// queryValues collects a repeatable query parameter, skipping blanks.
func queryValues(c *fiber.Ctx, key string) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func respondError(c *fiber.Ctx, err error) error {
	var ves ValidationError
	switch {
	case errors.As(err, &ves):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	case errors.Is(err, ErrUnknownField), errors.Is(err, ErrInvalidFilter):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
}
