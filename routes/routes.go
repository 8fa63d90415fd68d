package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fieldops-backend/events"
	"fieldops-backend/repositories"
)

// SetupRoutes wires every resource group. Repositories are shared so the
// transfer engine, adjustment workflow and sync target all run against the
// same ledger.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *events.Hub) {
	ledger := repositories.NewLedgerRepository(db, hub)
	adjustments := repositories.NewAdjustmentRepository(db, ledger, hub)
	consumables := repositories.NewConsumableRepository(db)
	sync := repositories.NewSyncRepository(db, ledger)

	SetupItemRoutes(app, db, ledger)
	SetupInventoryRoutes(app, db, ledger)
	SetupAdjustmentRoutes(app, db, adjustments)
	SetupConsumableRoutes(app, db, consumables)
	SetupRMARoutes(app, db)
	SetupTransactionRoutes(app, db)
	SetupSyncRoutes(app, db, sync)
	SetupNotificationRoutes(app, db)
}
