package controllers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/middleware"
	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

type TransferController struct {
	DB     *gorm.DB
	Ledger *repositories.LedgerRepository
}

func NewTransferController(db *gorm.DB, ledger *repositories.LedgerRepository) *TransferController {
	return &TransferController{DB: db, Ledger: ledger}
}

// Transfer moves stock between two bins. The scanner page posts here with
// bin codes read from QR labels; the dashboard posts the same shape.
func (c *TransferController) Transfer(ctx *fiber.Ctx) error {
	var input repositories.TransferInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.ActingUser == "" {
		input.ActingUser = middleware.ActingUser(ctx)
	}

	txn, err := c.Ledger.Transfer(input)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": txn})
}

// GetBinsByLocation lists every bin at one location code, for the scanner's
// pick screen.
func (c *TransferController) GetBinsByLocation(ctx *fiber.Ctx) error {
	location := ctx.Params("location")
	if location == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location"})
	}

	var bins []models.Bin
	if err := c.DB.Where("location_code = ?", location).Find(&bins).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": bins})
}
