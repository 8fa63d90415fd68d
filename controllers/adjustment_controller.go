package controllers

import (
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

type AdjustmentController struct {
	DB          *gorm.DB
	Adjustments *repositories.AdjustmentRepository
}

func NewAdjustmentController(db *gorm.DB, adjustments *repositories.AdjustmentRepository) *AdjustmentController {
	return &AdjustmentController{DB: db, Adjustments: adjustments}
}

func (c *AdjustmentController) GetPending(ctx *fiber.Ctx) error {
	requests, err := c.Adjustments.ListPending()
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"requests": requests}})
}

func (c *AdjustmentController) Request(ctx *fiber.Ctx) error {
	var input struct {
		ItemID            uint   `json:"item_id" validate:"required"`
		RequestedQuantity int    `json:"requested_quantity"`
		Reason            string `json:"reason"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := c.Adjustments.Request(input.ItemID, input.RequestedQuantity, input.Reason, middleware.ActingUser(ctx))
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": request})
}

func (c *AdjustmentController) Approve(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := c.Adjustments.Approve(uint(id), middleware.ActingUser(ctx))
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": request})
}

func (c *AdjustmentController) Reject(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := c.Adjustments.Reject(uint(id), middleware.ActingUser(ctx))
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": request})
}
