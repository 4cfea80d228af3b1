package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one signed entry in a product's stock ledger.
// Positive quantities are inbound receipts, negative quantities are outbound
// sales; the current stock level is the signed sum over all entries.
type Transaction struct {
	Timestamp  time.Time
	Quantity   int
	UnitPrice  decimal.Decimal
	VendorID   string
	VendorName string
}

// SalesPoint is one observation in a product's demand series.
type SalesPoint struct {
	Timestamp time.Time
	Quantity  int
	Price     float64
}

// SalesSeries is a product's transaction history sorted ascending by
// timestamp. An empty series is a valid state and routes to the default
// forecast rather than an error.
type SalesSeries []SalesPoint

// ProductContext carries the static product attributes the engine needs.
// CurrentStock is derived upstream (normally the signed ledger sum); the
// engine never mutates the context.
type ProductContext struct {
	ID           string
	Name         string
	Category     *string
	Price        decimal.Decimal
	CurrentStock int
	MinStock     int
}

// SeasonalFactor holds the multiplicative demand adjustments per horizon.
type SeasonalFactor struct {
	ThirtyDay float64
	NinetyDay float64
}

// DemandForecast is the projected demand per horizon.
type DemandForecast struct {
	Next30Days int `json:"next_30_days"`
	Next90Days int `json:"next_90_days"`
}

// StockHealth describes the stock runway and the suggested reorder.
type StockHealth struct {
	DaysRemaining          int `json:"days_remaining"`
	SuggestedOrderQuantity int `json:"suggested_order_quantity"`
}

// VendorInfo identifies the latest vendor and its estimated lead time.
type VendorInfo struct {
	Name         string `json:"name"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// Result is the forecast record returned for every product, on both the
// computed and the default path.
type Result struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Category        *string         `json:"category"`
	Price           decimal.Decimal `json:"price"`
	CurrentStock    int             `json:"current_stock"`
	DemandForecast  DemandForecast  `json:"demand_forecast"`
	StockHealth     StockHealth     `json:"stock_health"`
	VendorInfo      VendorInfo      `json:"vendor_info"`
	PriceElasticity float64         `json:"price_elasticity"`
	ConfidenceScore float64         `json:"confidence_score"`
}
