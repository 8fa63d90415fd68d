package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES string
	APP_PORT    string
	JWTSecret   string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// SMTP settings for the low stock alert job.
	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string

	// Bounded retry count for ledger operations that hit a
	// conflicting concurrent write.
	TransferRetryLimit int

	allowedOrigins map[string]bool
)

// LoadConfig reads the .env file and initializes the configuration variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	MAIN_ROUTES = GetEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = GetEnv("APP_PORT", "9000")

	JWTSecret = GetEnv("JWT_SECRET", "fieldops_backend_key_secret")

	DBDriver = GetEnv("DB_DRIVER", "mysql")
	DBHost = GetEnv("DB_HOST", "localhost")
	DBPort = GetEnv("DB_PORT", "3306")
	DBUser = GetEnv("DB_USER", "fieldops")
	DBPassword = GetEnv("DB_PASSWORD", "fieldops")
	DBName = GetEnv("DB_NAME", "fieldops")

	SMTPHost = GetEnv("SMTP_HOST", "smtp.gmail.com")
	SMTPPort = getEnvAsInt("SMTP_PORT", 587)
	SMTPSender = GetEnv("SMTP_SENDER", "")
	SMTPPassword = GetEnv("SMTP_PASSWORD", "")

	TransferRetryLimit = getEnvAsInt("TRANSFER_RETRY_LIMIT", 3)

	loadAllowedOrigins()
}

// GetEnv reads an environment variable with a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// loadAllowedOrigins loads the list of allowed origins from the environment.
func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := GetEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
		}
		return
	}

	origins := strings.Split(originsStr, ",")
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
