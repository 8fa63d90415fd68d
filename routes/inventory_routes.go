package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB, ledger *repositories.LedgerRepository) {
	transferController := controllers.NewTransferController(db, ledger)
	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)

	api.Post("/transfer", transferController.Transfer)
	api.Get("/location/:location", transferController.GetBinsByLocation)
}
