package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	handlers.Init()

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- Product Catalog & Stock Ledger ---
	products := api.Group("/products", middleware.Authenticate)
	products.Get("/", handlers.HandleListProducts)
	products.Post("/", middleware.CheckRole("admin", "manager"), handlers.HandleCreateProduct)
	products.Get("/:productId", handlers.HandleGetProductByID)
	products.Put("/:productId", middleware.CheckRole("admin", "manager"), handlers.HandleUpdateProduct)
	products.Delete("/:productId", middleware.CheckRole("admin"), handlers.HandleDeleteProduct)
	products.Post("/:productId/transactions", handlers.HandleRecordTransaction)
	products.Get("/:productId/transactions", handlers.HandleGetTransactionHistory)

	// --- Forecasting ---
	forecast := api.Group("/forecast", middleware.Authenticate)
	forecast.Get("/", handlers.HandleGetAllForecasts)
	forecast.Post("/calculate", handlers.HandleCalculateForecast)
	forecast.Get("/:productId", handlers.HandleGetProductForecast)

	// --- Inventory Alerts ---
	inventory := api.Group("/inventory", middleware.Authenticate)
	inventory.Get("/alert", handlers.HandleGetInventoryAlerts)

	// --- AI Restock Advisor ---
	advisor := api.Group("/advisor", middleware.Authenticate)
	advisor.Post("/restock", handlers.HandleRestockAdvice)

	// --- Admin ---
	admin := api.Group("/admin", middleware.Authenticate, middleware.CheckRole("admin"))
	admin.Post("/users", handlers.HandleCreateUser)
}
