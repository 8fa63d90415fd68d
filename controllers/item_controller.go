package controllers

import (
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/middleware"
	"fieldops-backend/models"
	"fieldops-backend/repositories"
)

type ItemController struct {
	DB     *gorm.DB
	Ledger *repositories.LedgerRepository
}

func NewItemController(db *gorm.DB, ledger *repositories.LedgerRepository) *ItemController {
	return &ItemController{DB: db, Ledger: ledger}
}

// GetItems returns the derived item views: metadata, total stock,
// per-kind breakdown and status.
func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	overviews, err := c.Ledger.ListItemOverviews()
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": overviews}})
}

func (c *ItemController) GetItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	overview, err := c.Ledger.GetItemOverview(uint(id))
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": overview})
}

func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var input repositories.NewItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(input.Item); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.Ledger.CreateItem(input, middleware.ActingUser(ctx))
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateItem edits catalog metadata only. Bin quantities are never touched
// here; corrections go through the adjustment workflow.
func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	var item models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		return errorJSON(ctx, err)
	}

	var input struct {
		Name         *string  `json:"name"`
		Brand        *string  `json:"brand"`
		ModelName    *string  `json:"model"`
		Category     *string  `json:"category"`
		UnitCost     *float64 `json:"unit_cost"`
		RetailPrice  *float64 `json:"retail_price"`
		ReorderPoint *int     `json:"reorder_point"`
		InitialStock *int     `json:"initial_stock"`
		Supplier     *string  `json:"supplier"`
		LeadTime     *string  `json:"lead_time"`
		Warranty     *string  `json:"warranty"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{"updated_by": middleware.ActingUser(ctx)}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.ModelName != nil {
		updates["model_name"] = *input.ModelName
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.UnitCost != nil {
		updates["unit_cost"] = *input.UnitCost
	}
	if input.RetailPrice != nil {
		updates["retail_price"] = *input.RetailPrice
	}
	if input.ReorderPoint != nil {
		updates["reorder_point"] = *input.ReorderPoint
	}
	if input.InitialStock != nil {
		updates["initial_stock"] = *input.InitialStock
	}
	if input.Supplier != nil {
		updates["supplier"] = *input.Supplier
	}
	if input.LeadTime != nil {
		updates["lead_time"] = *input.LeadTime
	}
	if input.Warranty != nil {
		updates["warranty"] = *input.Warranty
	}

	if err := c.DB.Model(&item).Updates(updates).Error; err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": item})
}

// DeleteItem removes the item and all its bins in one transaction.
func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	if err := c.Ledger.DeleteItem(uint(id)); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item and its bins deleted"})
}
