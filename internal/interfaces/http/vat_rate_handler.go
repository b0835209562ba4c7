package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
)

// VatRateHandler handles VAT rate administration requests.
type VatRateHandler struct {
	uc *catalog.VatRateUseCase
}

// NewVatRateHandler builds the handler.
func NewVatRateHandler(uc *catalog.VatRateUseCase) *VatRateHandler {
	return &VatRateHandler{uc: uc}
}

// Create POST /api/vat-rates
func (h *VatRateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVatRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rate, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rate)
}

// List GET /api/vat-rates
func (h *VatRateHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/vat-rates/:id
func (h *VatRateHandler) GetByID(c *fiber.Ctx) error {
	rate, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rate)
}

// Update PUT /api/vat-rates/:id
func (h *VatRateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVatRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rate, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rate)
}

// SetDefault POST /api/vat-rates/:id/set-default
func (h *VatRateHandler) SetDefault(c *fiber.Ctx) error {
	rate, err := h.uc.SetDefault(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rate)
}

// GetDefault GET /api/vat-rates/default
func (h *VatRateHandler) GetDefault(c *fiber.Ctx) error {
	rate, err := h.uc.FindDefault()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rate)
}

// Resolve GET /api/vat-rates/resolve?country_code=TN&as_of=2024-06-01
// Returns the effective rate for the country and date, falling back to the
// default rate; 404 when nothing applies.
func (h *VatRateHandler) Resolve(c *fiber.Ctx) error {
	var country *string
	if v := c.Query("country_code"); v != "" {
		country = &v
	}
	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02", v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Code: "VALIDATION", Message: "as_of must be RFC 3339 or YYYY-MM-DD",
				})
			}
		}
		asOf = t
	}
	rate, err := h.uc.Resolve(country, asOf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rate)
}

// Delete DELETE /api/vat-rates/:id — soft delete; the default rate refuses
// with 409 until another rate is promoted.
func (h *VatRateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
