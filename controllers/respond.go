package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/repositories"
)

// statusForError maps ledger errors onto HTTP statuses. Validation errors
// are the caller's to fix; conflicts surface as 409 only after the
// repository's bounded retries are exhausted.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrInvalidQuantity),
		errors.Is(err, repositories.ErrSameLocation),
		errors.Is(err, repositories.ErrInvalidDestinationKind):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrSourceNotFound),
		errors.Is(err, repositories.ErrItemNotFound),
		errors.Is(err, repositories.ErrNoWarehouseBin),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, repositories.ErrAlreadyResolved),
		errors.Is(err, repositories.ErrConcurrentModification):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(ctx *fiber.Ctx, err error) error {
	return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
