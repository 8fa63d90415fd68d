package controllers

import (
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/middleware"
	"fieldops-backend/models"
)

type RMAController struct {
	DB *gorm.DB
}

func NewRMAController(db *gorm.DB) *RMAController {
	return &RMAController{DB: db}
}

func (c *RMAController) GetRMAs(ctx *fiber.Ctx) error {
	var rmas []models.RMARequest
	if err := c.DB.Order("created_at desc").Find(&rmas).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"rmas": rmas}})
}

func (c *RMAController) CreateRMA(ctx *fiber.Ctx) error {
	var rma models.RMARequest
	if err := ctx.BodyParser(&rma); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(rma); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rma.Status = models.RMAPending
	rma.CreatedBy = middleware.ActingUser(ctx)

	if err := c.DB.Create(&rma).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": rma})
}

// UpdateStatus advances the RMA through its linear flow; reverse or
// skipped transitions are rejected.
func (c *RMAController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid RMA id"})
	}

	var input struct {
		Status models.RMAStatus `json:"status" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var rma models.RMARequest
	if err := c.DB.First(&rma, id).Error; err != nil {
		return errorJSON(ctx, err)
	}

	if !rma.Status.CanTransition(input.Status) {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Invalid status transition from " + string(rma.Status) + " to " + string(input.Status),
		})
	}

	if err := c.DB.Model(&rma).Update("status", input.Status).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": rma})
}
