package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"app/database"
	"app/forecast"
	"app/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

var errProductNotFound = errors.New("product not found")

// HandleGetAllForecasts returns forecasts for every product.
// GET /api/v1/forecast/
func HandleGetAllForecasts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	rows, err := db.Query(ctx, "SELECT id FROM products ORDER BY name")
	if err != nil {
		log.Printf("Error listing products for forecast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list products"})
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan product id"})
		}
		ids = append(ids, id)
	}

	forecasts, err := collectForecasts(ctx, ids, getForecast)
	if err != nil {
		log.Printf("Error computing forecasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute forecasts"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": forecasts})
}

// HandleGetProductForecast returns the forecast for one product.
// GET /api/v1/forecast/:productId
func HandleGetProductForecast(c *fiber.Ctx) error {
	ctx := context.Background()
	productID := c.Params("productId")

	result, err := getForecast(ctx, productID)
	if err != nil {
		if errors.Is(err, errProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error computing forecast for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute forecast"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": result})
}

// HandleCalculateForecast recomputes forecasts for the given products, or for
// all products when none are named, bypassing cached results.
// POST /api/v1/forecast/calculate
func HandleCalculateForecast(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req struct {
		ProductIDs []string `json:"product_ids"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
		}
	}

	ids := req.ProductIDs
	if len(ids) == 0 {
		rows, err := db.Query(ctx, "SELECT id FROM products")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list products"})
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan product id"})
			}
			ids = append(ids, id)
		}
	}

	forecasts := make([]forecast.Result, 0, len(ids))
	for _, id := range ids {
		forecastCache.Invalidate(id)
		result, err := getForecast(ctx, id)
		if err != nil {
			if errors.Is(err, errProductNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": fmt.Sprintf("Product %s not found", id)})
			}
			log.Printf("Error recalculating forecast for product %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to recalculate forecasts"})
		}
		forecasts = append(forecasts, result)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Calculated forecasts for %d products", len(forecasts)),
		"data":    forecasts,
	})
}

// collectForecasts gathers forecasts for a set of product ids. Products
// deleted between the id listing and the lookup are skipped rather than
// failing the whole collection.
func collectForecasts(ctx context.Context, ids []string, get func(context.Context, string) (forecast.Result, error)) ([]forecast.Result, error) {
	forecasts := make([]forecast.Result, 0, len(ids))
	for _, id := range ids {
		result, err := get(ctx, id)
		if err != nil {
			if errors.Is(err, errProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		forecasts = append(forecasts, result)
	}
	return forecasts, nil
}

// getForecast serves a forecast from the cache or computes it from the
// product row and its transaction ledger.
func getForecast(ctx context.Context, productID string) (forecast.Result, error) {
	if result, ok := forecastCache.Get(productID); ok {
		metrics.CacheHits.Inc()
		return result, nil
	}
	metrics.CacheMisses.Inc()

	pc, openingStock, err := loadProductContext(ctx, productID)
	if err != nil {
		return forecast.Result{}, err
	}

	txs, err := loadTransactions(ctx, productID)
	if err != nil {
		return forecast.Result{}, err
	}

	// The ledger is the source of truth for stock; the denormalized counter
	// only covers products whose opening stock predates the ledger.
	if len(txs) > 0 {
		_, stock := forecast.BuildSeries(txs)
		pc.CurrentStock = stock
	} else {
		pc.CurrentStock = openingStock
	}

	result := forecastEngine.Compute(pc, txs)

	path := metrics.PathComputed
	if len(txs) == 0 {
		path = metrics.PathDefault
	}
	metrics.ForecastsComputed.WithLabelValues(path).Inc()

	forecastCache.Set(productID, result)
	return result, nil
}

// loadProductContext fetches the static product attributes the engine needs.
func loadProductContext(ctx context.Context, productID string) (forecast.ProductContext, int, error) {
	db := database.GetDB()

	var pc forecast.ProductContext
	var category sql.NullString
	var inStock int

	query := "SELECT id, name, category, price, in_stock, min_stock FROM products WHERE id = $1"
	err := db.QueryRow(ctx, query, productID).Scan(&pc.ID, &pc.Name, &category, &pc.Price, &inStock, &pc.MinStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return forecast.ProductContext{}, 0, errProductNotFound
		}
		return forecast.ProductContext{}, 0, err
	}

	if category.Valid {
		pc.Category = &category.String
	}
	return pc, inStock, nil
}

// loadTransactions fetches the full signed ledger for a product.
func loadTransactions(ctx context.Context, productID string) ([]forecast.Transaction, error) {
	db := database.GetDB()

	query := `
		SELECT quantity, unit_price, vendor_id, vendor_name, created_at
		FROM stock_transactions
		WHERE product_id = $1
		ORDER BY created_at
	`
	rows, err := db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []forecast.Transaction
	for rows.Next() {
		var tx forecast.Transaction
		var vendorID, vendorName sql.NullString
		if err := rows.Scan(&tx.Quantity, &tx.UnitPrice, &vendorID, &vendorName, &tx.Timestamp); err != nil {
			return nil, err
		}
		tx.VendorID = vendorID.String
		tx.VendorName = vendorName.String
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
