package handlers

import (
	"context"
	"database/sql"
	"log"

	"app/database"
	"app/metrics"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// alertUrgency grades a restock alert: HIGH once stock is at or below the
// minimum, MEDIUM while it sits between the minimum and 1.5x the minimum.
func alertUrgency(inStock, minStock int) string {
	if inStock <= minStock {
		return "HIGH"
	}
	return "MEDIUM"
}

// HandleGetInventoryAlerts lists products that need restocking.
// GET /api/v1/inventory/alert
func HandleGetInventoryAlerts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	query := `
		SELECT id, name, sku, category, vendor, price, in_stock, min_stock, location
		FROM products
		WHERE in_stock <= min_stock * 1.5
		ORDER BY in_stock - min_stock
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Printf("Error querying restock alerts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve inventory alerts"})
	}
	defer rows.Close()

	alerts := make([]models.RestockAlert, 0)
	for rows.Next() {
		var a models.RestockAlert
		var category, vendor, location sql.NullString
		if err := rows.Scan(&a.ProductID, &a.Name, &a.SKU, &category, &vendor, &a.Price, &a.CurrentStock, &a.MinStock, &location); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan alert data"})
		}
		a.Category = utils.NullStringToStringPtr(category)
		a.Vendor = utils.NullStringToStringPtr(vendor)
		a.Location = utils.NullStringToStringPtr(location)
		a.Threshold = float64(a.MinStock) * 1.5
		a.Urgency = alertUrgency(a.CurrentStock, a.MinStock)
		alerts = append(alerts, a)
	}

	metrics.RestockAlerts.Set(float64(len(alerts)))

	return c.JSON(fiber.Map{"status": "success", "count": len(alerts), "data": alerts})
}
