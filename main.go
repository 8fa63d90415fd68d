package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fieldops-backend/config"
	"fieldops-backend/database"
	"fieldops-backend/events"
	"fieldops-backend/idgen"
	"fieldops-backend/routes"
	seed "fieldops-backend/seeder"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := seed.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	idgen.Init()

	// Ledger changes fan out through the hub; the notification writer
	// persists the ones an admin should see.
	hub := events.NewHub()
	notifyCh, _ := hub.Subscribe()
	go (&events.NotificationWriter{DB: db}).Run(notifyCh)

	config.SetupCORS(app)

	// Device agents probe this to decide when to drain their queues.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupRoutes(app, db, hub)

	port := config.APP_PORT
	config.GetLogger().WithField("port", port).Info("fieldops backend listening")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
