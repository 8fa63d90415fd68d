package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

func SetupSyncRoutes(app *fiber.App, db *gorm.DB, sync *repositories.SyncRepository) {
	syncController := controllers.NewSyncController(db, sync)
	api := app.Group(config.MAIN_ROUTES+"/sync", middleware.AuthMiddleware)

	api.Post("/intent", syncController.ApplyIntent)
	api.Post("/batch", syncController.ApplyBatch)
}
