package controllers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

// SyncController is the drain target for device offline queues. Devices
// post intents one at a time or in a batch; each intent carries its client
// key so a replay is a no-op.
type SyncController struct {
	DB   *gorm.DB
	Sync *repositories.SyncRepository
}

func NewSyncController(db *gorm.DB, sync *repositories.SyncRepository) *SyncController {
	return &SyncController{DB: db, Sync: sync}
}

func (c *SyncController) ApplyIntent(ctx *fiber.Ctx) error {
	var input repositories.IntentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.Sync.Apply(input, middleware.ActingUser(ctx)); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// ApplyBatch applies a list of intents in order. A failing intent does not
// stop the rest; its client key is reported back so the device keeps it
// queued for the next drain.
func (c *SyncController) ApplyBatch(ctx *fiber.Ctx) error {
	var input struct {
		Intents []repositories.IntentInput `json:"intents" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	actingUser := middleware.ActingUser(ctx)
	applied := make([]string, 0, len(input.Intents))
	failed := make([]fiber.Map, 0)

	for _, intent := range input.Intents {
		if err := c.Sync.Apply(intent, actingUser); err != nil {
			config.LogError("controllers", "SyncController.ApplyBatch", intent.ClientKey, err)
			failed = append(failed, fiber.Map{"client_key": intent.ClientKey, "error": err.Error()})
			continue
		}
		applied = append(applied, intent.ClientKey)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"applied": applied, "failed": failed},
	})
}
