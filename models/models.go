package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User represents an operator of the system (admin, manager, or staff).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Core Models ---

// Product is a catalog entry. InStock is a denormalized counter maintained
// on ledger writes; the stock_transactions ledger is the source of truth.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    *string         `json:"category,omitempty"`
	Vendor      *string         `json:"vendor,omitempty"`
	Price       decimal.Decimal `json:"price"`
	InStock     int             `json:"in_stock"`
	MinStock    int             `json:"min_stock"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockTransaction is one signed ledger entry for a product. Positive
// quantities are inbound receipts, negative quantities are outbound sales.
type StockTransaction struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	VendorID   *string         `json:"vendor_id,omitempty"`
	VendorName *string         `json:"vendor_name,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RestockAlert flags a product whose stock fell under 1.5x its minimum.
type RestockAlert struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     *string         `json:"category,omitempty"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	Threshold    float64         `json:"threshold"`
	Vendor       *string         `json:"vendor,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Urgency      string          `json:"urgency"`
}

// --- AI Advisor ---

// AdvisorDay is one day of the advisor's short-range sales projection.
type AdvisorDay struct {
	Date           string `json:"date"`
	PredictedSales int    `json:"predicted_sales"`
}

// AdvisorResponse is the parsed model output for a restock advice request.
type AdvisorResponse struct {
	ProductName     string       `json:"product_name"`
	CurrentStock    int          `json:"current_stock"`
	Forecast        []AdvisorDay `json:"forecast"`
	Summary         string       `json:"summary"`
	PositiveFactors []string     `json:"positive_factors"`
	NegativeFactors []string     `json:"negative_factors"`
}
