package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

func SetupItemRoutes(app *fiber.App, db *gorm.DB, ledger *repositories.LedgerRepository) {
	itemController := controllers.NewItemController(db, ledger)
	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)

	api.Get("/", itemController.GetItems)
	api.Get("/:id", itemController.GetItem)
	api.Post("/", itemController.CreateItem)
	api.Put("/:id", itemController.UpdateItem)
	api.Delete("/:id", middleware.RequireRole("admin"), itemController.DeleteItem)
}
