package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fixedNow is a mid-June instant, outside every non-Food peak window.
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	e := NewEngine()
	e.Now = func() time.Time { return fixedNow }
	return e
}

func strPtr(s string) *string { return &s }

// dailySales builds n consecutive daily transactions ending at fixedNow.
func dailySales(n, quantity int, price float64) []Transaction {
	txs := make([]Transaction, 0, n)
	for i := n - 1; i >= 0; i-- {
		txs = append(txs, Transaction{
			Timestamp:  fixedNow.AddDate(0, 0, -i),
			Quantity:   quantity,
			UnitPrice:  decimal.NewFromFloat(price),
			VendorID:   "vendor-a",
			VendorName: "VendorA",
		})
	}
	return txs
}

func TestComputeSteadyElectronicsOffPeak(t *testing.T) {
	e := testEngine()
	p := ProductContext{
		ID:           "p1",
		Name:         "Electronics Product 1",
		Category:     strPtr("Electronics"),
		Price:        decimal.NewFromFloat(99.99),
		CurrentStock: 100,
		MinStock:     10,
	}

	result := e.Compute(p, dailySales(30, 5, 99.99))

	// 30 observations span fewer than 12 month buckets and June is not an
	// Electronics peak month, so the seasonal factor stays neutral.
	assert.Equal(t, 150, result.DemandForecast.Next30Days)
	assert.Equal(t, 360, result.DemandForecast.Next90Days) // 5*90*0.8
	assert.Equal(t, 20, result.StockHealth.DaysRemaining)  // 100 / 5
	// constant quantities: std 0, so no safety buffer on top of 150-100
	assert.Equal(t, 50, result.StockHealth.SuggestedOrderQuantity)
	assert.Greater(t, result.ConfidenceScore, 0.3)
	assert.Less(t, result.ConfidenceScore, 1.0)
	assert.Equal(t, "VendorA", result.VendorInfo.Name)
}

func TestComputeDefaultPathNoHistory(t *testing.T) {
	e := testEngine()
	p := ProductContext{
		ID:           "p2",
		Name:         "New Product",
		Price:        decimal.NewFromFloat(10),
		CurrentStock: 100,
		MinStock:     10,
	}

	result := e.Compute(p, nil)

	assert.Equal(t, 20, result.DemandForecast.Next30Days)
	assert.Equal(t, 60, result.DemandForecast.Next90Days)
	assert.Equal(t, 10, result.StockHealth.SuggestedOrderQuantity)
	assert.Equal(t, 999, result.StockHealth.DaysRemaining)
	assert.Equal(t, 0.3, result.ConfidenceScore)
	assert.Equal(t, 7, result.VendorInfo.LeadTimeDays)
	assert.Equal(t, "Unknown", result.VendorInfo.Name)
}

func TestComputeDefaultPathZeroStock(t *testing.T) {
	e := testEngine()
	result := e.Compute(ProductContext{ID: "p3", MinStock: 5}, nil)
	assert.Equal(t, 0, result.StockHealth.DaysRemaining)
	assert.Equal(t, 5, result.StockHealth.SuggestedOrderQuantity)
}

func TestComputeIdempotent(t *testing.T) {
	e := testEngine()
	p := ProductContext{
		ID:           "p4",
		Name:         "Widget",
		Category:     strPtr("Clothing"),
		Price:        decimal.NewFromFloat(25.50),
		CurrentStock: 40,
		MinStock:     8,
	}
	txs := dailySales(45, 3, 25.50)

	first := e.Compute(p, txs)
	second := e.Compute(p, txs)
	assert.Equal(t, first, second)
}

func TestComputeSentinelWhenDemandNonPositive(t *testing.T) {
	e := testEngine()
	// mixed-sign ledger with a negative mean: daily demand <= 0
	txs := []Transaction{
		{Timestamp: fixedNow.AddDate(0, 0, -3), Quantity: 2, UnitPrice: decimal.NewFromInt(5), VendorID: "v1"},
		{Timestamp: fixedNow.AddDate(0, 0, -2), Quantity: -6, UnitPrice: decimal.NewFromInt(5), VendorID: "v1"},
		{Timestamp: fixedNow.AddDate(0, 0, -1), Quantity: -2, UnitPrice: decimal.NewFromInt(5), VendorID: "v1"},
	}

	result := e.Compute(ProductContext{ID: "p5", CurrentStock: 10}, txs)

	assert.Equal(t, 999, result.StockHealth.DaysRemaining)
	assert.GreaterOrEqual(t, result.StockHealth.SuggestedOrderQuantity, 0)
	// a negative mean must never surface as negative demand
	assert.Equal(t, 0, result.DemandForecast.Next30Days)
	assert.Equal(t, 0, result.DemandForecast.Next90Days)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0.1)
	assert.LessOrEqual(t, result.ConfidenceScore, 1.0)
}

func TestVendorLeadTimeFromDeliveryIntervals(t *testing.T) {
	e := testEngine()
	// three deliveries, ten days apart
	txs := []Transaction{
		{Timestamp: fixedNow.AddDate(0, 0, -20), Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
		{Timestamp: fixedNow.AddDate(0, 0, -10), Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
		{Timestamp: fixedNow, Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
	}

	info := e.vendorInfo(txs)
	assert.Equal(t, "Acme", info.Name)
	assert.Equal(t, 10, info.LeadTimeDays)
}

func TestVendorInfoIgnoresTrailingSales(t *testing.T) {
	e := testEngine()
	// two deliveries ten days apart, then a vendor-less sale as the newest
	// ledger row; the sale must not displace the delivery history
	txs := []Transaction{
		{Timestamp: fixedNow.AddDate(0, 0, -15), Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
		{Timestamp: fixedNow.AddDate(0, 0, -5), Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
		{Timestamp: fixedNow, Quantity: -3, UnitPrice: decimal.NewFromInt(8)},
	}

	info := e.vendorInfo(txs)
	assert.Equal(t, "Acme", info.Name)
	assert.Equal(t, 10, info.LeadTimeDays)
}

func TestVendorInfoSalesOnlyLedger(t *testing.T) {
	e := testEngine()
	txs := []Transaction{
		{Timestamp: fixedNow.AddDate(0, 0, -2), Quantity: -4, UnitPrice: decimal.NewFromInt(8)},
		{Timestamp: fixedNow.AddDate(0, 0, -1), Quantity: -2, UnitPrice: decimal.NewFromInt(8)},
	}

	info := e.vendorInfo(txs)
	assert.Equal(t, "Unknown", info.Name)
	assert.Equal(t, 7, info.LeadTimeDays)
}

func TestVendorLeadTimeFallsBackWithSingleDelivery(t *testing.T) {
	e := testEngine()
	txs := []Transaction{
		{Timestamp: fixedNow, Quantity: 10, UnitPrice: decimal.NewFromInt(5), VendorID: "v1", VendorName: "Acme"},
	}
	info := e.vendorInfo(txs)
	assert.Equal(t, 7, info.LeadTimeDays)
}
