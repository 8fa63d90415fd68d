package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
)

func SetupNotificationRoutes(app *fiber.App, db *gorm.DB) {
	notificationController := controllers.NewNotificationController(db)
	api := app.Group(config.MAIN_ROUTES+"/notifications", middleware.AuthMiddleware)

	api.Get("/", notificationController.GetNotifications)
	api.Put("/:id/read", notificationController.MarkRead)
}
