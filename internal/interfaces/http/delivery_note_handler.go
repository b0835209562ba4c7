package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
)

// DeliveryNoteHandler handles delivery note HTTP requests.
type DeliveryNoteHandler struct {
	uc *sales.DeliveryUseCase
}

// NewDeliveryNoteHandler builds the handler.
func NewDeliveryNoteHandler(uc *sales.DeliveryUseCase) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{uc: uc}
}

// Create POST /api/delivery-notes
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// List GET /api/delivery-notes?limit=20&offset=0
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/delivery-notes/:id
func (h *DeliveryNoteHandler) GetByID(c *fiber.Ctx) error {
	note, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Update PUT /api/delivery-notes/:id — pending notes only.
func (h *DeliveryNoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// UpdateStatus PATCH /api/delivery-notes/:id/status
func (h *DeliveryNoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.UpdateStatus(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// SetDeliveredQuantities PATCH /api/delivery-notes/:id/delivered-quantities
func (h *DeliveryNoteHandler) SetDeliveredQuantities(c *fiber.Ctx) error {
	var in []dto.DeliveredQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.SetDeliveredQuantities(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Delete DELETE /api/delivery-notes/:id
func (h *DeliveryNoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
