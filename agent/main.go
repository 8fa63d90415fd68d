package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"fieldops-backend/config"
	"fieldops-backend/offline"
)

// The field agent runs on the technician's device. It exposes a loopback
// API the field app writes captures to, queues them durably, and replays
// the queue against the backend whenever connectivity is available.

func main() {
	config.LoadConfig()

	queuePath := config.GetEnv("AGENT_QUEUE_PATH", "fieldops-queue.db")
	serverURL := config.GetEnv("AGENT_SERVER_URL", "http://localhost:9000")
	token := config.GetEnv("AGENT_TOKEN", "")
	listenAddr := config.GetEnv("AGENT_LISTEN", "127.0.0.1:9100")

	queue, err := offline.Open(queuePath)
	if err != nil {
		log.Fatalf("Failed to open offline queue: %v", err)
	}
	defer queue.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	online := make(chan bool, 1)
	go probeConnectivity(ctx, serverURL+"/health", online)

	watcher := &offline.Watcher{
		Queue:    queue,
		Applier:  offline.NewHTTPApplier(serverURL+config.MAIN_ROUTES, token),
		Online:   online,
		Interval: 30 * time.Second,
	}
	go watcher.Run(ctx)

	app := fiber.New()

	// Capture endpoint for the field app. Succeeds locally whether or not
	// the network is up; the watcher reconciles later.
	app.Post("/capture/:collection", func(c *fiber.Ctx) error {
		collection := c.Params("collection")
		var payload map[string]interface{}
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		intent, err := queue.Enqueue(c.Context(), collection, payload)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true, "data": intent})
	})

	app.Get("/pending", func(c *fiber.Ctx) error {
		count, err := queue.PendingCount(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"pending": count}})
	})

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	if err := app.Listen(listenAddr); err != nil {
		log.Fatal(err)
	}
}

// probeConnectivity polls the backend health endpoint and feeds the
// watcher's online signal on state changes.
func probeConnectivity(ctx context.Context, healthURL string, online chan<- bool) {
	client := &http.Client{Timeout: 5 * time.Second}
	wasOnline := false

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := client.Get(healthURL)
			isOnline := err == nil && resp.StatusCode == http.StatusOK
			if resp != nil {
				resp.Body.Close()
			}
			if isOnline != wasOnline {
				wasOnline = isOnline
				select {
				case online <- isOnline:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
