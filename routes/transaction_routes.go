package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
)

func SetupTransactionRoutes(app *fiber.App, db *gorm.DB) {
	transactionController := controllers.NewTransactionController(db)
	api := app.Group(config.MAIN_ROUTES+"/transactions", middleware.AuthMiddleware)

	api.Get("/", transactionController.GetTransactions)
	api.Get("/excel", transactionController.ExportExcel)
}
