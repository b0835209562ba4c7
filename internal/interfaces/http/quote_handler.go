package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
)

// QuoteHandler handles quote HTTP requests.
type QuoteHandler struct {
	uc *sales.QuoteUseCase
}

// NewQuoteHandler builds the handler.
func NewQuoteHandler(uc *sales.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	quote, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// List GET /api/quotes?limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Update PUT /api/quotes/:id — replaces the lines and recomputes every
// derived field.
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	quote, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Delete DELETE /api/quotes/:id
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
