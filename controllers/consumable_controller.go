package controllers

import (
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

type ConsumableController struct {
	DB          *gorm.DB
	Consumables *repositories.ConsumableRepository
}

func NewConsumableController(db *gorm.DB, consumables *repositories.ConsumableRepository) *ConsumableController {
	return &ConsumableController{DB: db, Consumables: consumables}
}

type consumableView struct {
	models.Consumable
	BelowMinimum bool `json:"below_minimum"`
}

func (c *ConsumableController) GetConsumables(ctx *fiber.Ctx) error {
	var consumables []models.Consumable
	if err := c.DB.Order("name").Find(&consumables).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	views := make([]consumableView, 0, len(consumables))
	for _, consumable := range consumables {
		views = append(views, consumableView{Consumable: consumable, BelowMinimum: consumable.BelowMinimum()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"consumables": views}})
}

func (c *ConsumableController) CreateConsumable(ctx *fiber.Ctx) error {
	var consumable models.Consumable
	if err := ctx.BodyParser(&consumable); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(consumable); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if consumable.Quantity < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity cannot be negative"})
	}

	if err := c.DB.Create(&consumable).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": consumable})
}

// AdjustConsumable applies a +/- delta, clamped at zero.
func (c *ConsumableController) AdjustConsumable(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid consumable id"})
	}

	var input struct {
		Delta int `json:"delta"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	consumable, err := c.Consumables.Adjust(uint(id), input.Delta)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    consumableView{Consumable: *consumable, BelowMinimum: consumable.BelowMinimum()},
	})
}

func (c *ConsumableController) DeleteConsumable(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid consumable id"})
	}

	if err := c.DB.Delete(&models.Consumable{}, id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Consumable deleted"})
}
