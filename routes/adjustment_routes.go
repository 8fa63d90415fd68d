package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/middleware"
	"fieldops-backend/repositories"
)

func SetupAdjustmentRoutes(app *fiber.App, db *gorm.DB, adjustments *repositories.AdjustmentRepository) {
	adjustmentController := controllers.NewAdjustmentController(db, adjustments)
	api := app.Group(config.MAIN_ROUTES+"/adjustments", middleware.AuthMiddleware)

	api.Get("/", adjustmentController.GetPending)
	api.Post("/", adjustmentController.Request)
	api.Post("/:id/approve", middleware.RequireRole("admin", "manager"), adjustmentController.Approve)
	api.Post("/:id/reject", middleware.RequireRole("admin", "manager"), adjustmentController.Reject)
}
