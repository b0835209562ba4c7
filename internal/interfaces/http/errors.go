package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
)

// respondError maps domain errors to HTTP statuses. Conflict responses carry
// the entity and the dependent count so the caller can resolve the refusal.
func respondError(c *fiber.Ctx, err error) error {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:       "CONFLICT",
			Message:    conflict.Error(),
			Entity:     conflict.Entity,
			EntityID:   conflict.ID,
			Dependents: conflict.Dependents,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}
