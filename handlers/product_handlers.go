package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

const productColumns = "id, name, sku, category, vendor, price, in_stock, min_stock, description, location, image_url, created_at, updated_at"

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	var category, vendor, description, location, imageURL sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &category, &vendor, &p.Price,
		&p.InStock, &p.MinStock, &description, &location, &imageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}
	p.Category = utils.NullStringToStringPtr(category)
	p.Vendor = utils.NullStringToStringPtr(vendor)
	p.Description = utils.NullStringToStringPtr(description)
	p.Location = utils.NullStringToStringPtr(location)
	p.ImageURL = utils.NullStringToStringPtr(imageURL)
	return p, nil
}

// HandleListProducts lists the product catalog with pagination.
// GET /api/v1/products
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var total int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}

	query := "SELECT " + productColumns + " FROM products ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := db.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan product data"})
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       products,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

// HandleCreateProduct creates a product. The optional in_stock value seeds the
// opening stock counter for products without ledger history.
// POST /api/v1/products
func HandleCreateProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Name == "" || req.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, sku)"})
	}

	query := `
		INSERT INTO products (name, sku, category, vendor, price, in_stock, min_stock, description, location, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(ctx, query,
		req.Name, req.SKU, req.Category, req.Vendor, req.Price,
		req.InStock, req.MinStock, req.Description, req.Location, req.ImageURL,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": req})
}

// HandleGetProductByID returns one product.
// GET /api/v1/products/:productId
func HandleGetProductByID(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID := c.Params("productId")

	row := db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", productID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": p})
}

// HandleUpdateProduct updates a product's catalog attributes. Stock is not
// updatable here; it moves through the transaction ledger.
// PUT /api/v1/products/:productId
func HandleUpdateProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID := c.Params("productId")
	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	query := `
		UPDATE products
		SET name = $1, sku = $2, category = $3, vendor = $4, price = $5, min_stock = $6,
		    description = $7, location = $8, image_url = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING in_stock, created_at, updated_at
	`
	err := db.QueryRow(ctx, query,
		req.Name, req.SKU, req.Category, req.Vendor, req.Price, req.MinStock,
		req.Description, req.Location, req.ImageURL, productID,
	).Scan(&req.InStock, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update product"})
	}
	req.ID = productID

	forecastCache.Invalidate(productID)

	return c.JSON(fiber.Map{"status": "success", "data": req})
}

// HandleDeleteProduct removes a product and its ledger.
// DELETE /api/v1/products/:productId
func HandleDeleteProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID := c.Params("productId")

	tag, err := db.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}

	forecastCache.Invalidate(productID)

	return c.SendStatus(fiber.StatusNoContent)
}
