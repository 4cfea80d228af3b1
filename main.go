package main

import (
	"app/config"
	"app/database"
	"app/routes"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	config.AppConfig.Port = os.Getenv("PORT")
	if config.AppConfig.Port == "" {
		config.AppConfig.Port = "3000"
	}

	config.AppConfig.ForecastCacheTTL = time.Hour
	if ttlStr := os.Getenv("FORECAST_CACHE_TTL_SECONDS"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil && ttl > 0 {
			config.AppConfig.ForecastCacheTTL = time.Duration(ttl) * time.Second
		}
	}

	// Initialize database
	database.InitDB(databaseURL)
	defer database.CloseDB()

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	app.Get("/version", func(c *fiber.Ctx) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return c.Status(500).SendString("no build information available")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
		return c.SendString("<pre>\n" + info.String() + "</pre>\n")
	})

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
