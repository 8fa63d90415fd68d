package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

func SetupConsumableRoutes(app *fiber.App, db *gorm.DB, consumables *repositories.ConsumableRepository) {
	consumableController := controllers.NewConsumableController(db, consumables)
	api := app.Group(config.MAIN_ROUTES+"/consumables", middleware.AuthMiddleware)

	api.Get("/", consumableController.GetConsumables)
	api.Post("/", consumableController.CreateConsumable)
	api.Post("/:id/adjust", consumableController.AdjustConsumable)
	api.Delete("/:id", consumableController.DeleteConsumable)
}
