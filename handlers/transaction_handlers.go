package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// HandleRecordTransaction appends a signed entry to a product's stock ledger
// and keeps the denormalized stock counter in step. Positive quantities are
// inbound receipts, negative quantities are outbound sales.
// POST /api/v1/products/:productId/transactions
func HandleRecordTransaction(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID := c.Params("productId")

	var req struct {
		Quantity   int             `json:"quantity"`
		UnitPrice  decimal.Decimal `json:"unit_price"`
		VendorID   *string         `json:"vendor_id"`
		VendorName *string         `json:"vendor_name"`
		OccurredAt *time.Time      `json:"occurred_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Quantity == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Quantity must be non-zero"})
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	// Update the stock counter first so a missing product fails fast.
	var newStock int
	err = tx.QueryRow(ctx,
		"UPDATE products SET in_stock = in_stock + $1, updated_at = NOW() WHERE id = $2 RETURNING in_stock",
		req.Quantity, productID,
	).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error adjusting stock for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to adjust stock"})
	}

	record := models.StockTransaction{
		ProductID:  productID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		VendorID:   req.VendorID,
		VendorName: req.VendorName,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO stock_transactions (product_id, quantity, unit_price, vendor_id, vendor_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, productID, req.Quantity, req.UnitPrice, req.VendorID, req.VendorName, occurredAt).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.Printf("Error recording transaction for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record transaction"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	// The ledger changed; any cached forecast for this product is stale.
	forecastCache.Invalidate(productID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record, "new_stock": newStock})
}

// HandleGetTransactionHistory lists a product's ledger, newest first.
// GET /api/v1/products/:productId/transactions
func HandleGetTransactionHistory(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID := c.Params("productId")

	query := `
		SELECT id, product_id, quantity, unit_price, vendor_id, vendor_name, created_at
		FROM stock_transactions
		WHERE product_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Query(ctx, query, productID)
	if err != nil {
		log.Printf("Error listing transactions for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve transaction history"})
	}
	defer rows.Close()

	history := make([]models.StockTransaction, 0)
	for rows.Next() {
		var t models.StockTransaction
		var vendorID, vendorName sql.NullString
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Quantity, &t.UnitPrice, &vendorID, &vendorName, &t.CreatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan transaction data"})
		}
		t.VendorID = utils.NullStringToStringPtr(vendorID)
		t.VendorName = utils.NullStringToStringPtr(vendorName)
		history = append(history, t)
	}

	return c.JSON(fiber.Map{"status": "success", "data": history})
}
