package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
)

// ClientHandler handles client HTTP requests.
type ClientHandler struct {
	uc *catalog.ClientUseCase
}

// NewClientHandler builds the handler.
func NewClientHandler(uc *catalog.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List GET /api/clients?limit=20&offset=0
func (h *ClientHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// Delete DELETE /api/clients/:id — refused with 409 while documents still
// reference the client.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
