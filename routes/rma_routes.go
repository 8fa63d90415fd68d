package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
)

func SetupRMARoutes(app *fiber.App, db *gorm.DB) {
	rmaController := controllers.NewRMAController(db)
	api := app.Group(config.MAIN_ROUTES+"/rma", middleware.AuthMiddleware)

	api.Get("/", rmaController.GetRMAs)
	api.Post("/", rmaController.CreateRMA)
	api.Put("/:id/status", rmaController.UpdateStatus)
}
