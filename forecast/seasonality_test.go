package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// monthlySales builds one transaction per month walking backwards from
// fixedNow, so n months produce n distinct month buckets.
func monthlySales(months, quantity int) []Transaction {
	txs := make([]Transaction, 0, months)
	for i := months - 1; i >= 0; i-- {
		txs = append(txs, Transaction{
			Timestamp: fixedNow.AddDate(0, -i, 0),
			Quantity:  quantity,
			UnitPrice: decimal.NewFromInt(10),
			VendorID:  "v1",
		})
	}
	return txs
}

func TestSeasonalFactorsEmptySeries(t *testing.T) {
	e := testEngine()
	f := e.seasonalFactors(nil, "Electronics")
	assert.Equal(t, 1.0, f.ThirtyDay)
	assert.Equal(t, 1.0, f.NinetyDay)
}

func TestSeasonalFactorsInsufficientHistory(t *testing.T) {
	e := testEngine()
	series, _ := BuildSeries(monthlySales(6, 10))
	f := e.seasonalFactors(series, "Electronics")
	// fewer than 12 month buckets and June is off-peak for Electronics
	assert.Equal(t, 1.0, f.ThirtyDay)
	assert.Equal(t, 0.8, f.NinetyDay)
}

func TestSeasonalFactorsFoodBoostEveryMonth(t *testing.T) {
	e := testEngine()
	series, _ := BuildSeries(monthlySales(12, 10))
	f := e.seasonalFactors(series, "Food")
	// uniform history keeps the base at 1.0; Food peaks in every month
	assert.InDelta(t, 1.1, f.ThirtyDay, 1e-9)
	assert.InDelta(t, 0.88, f.NinetyDay, 1e-9)
}

func TestSeasonalFactorsUnknownCategoryNoBoost(t *testing.T) {
	e := testEngine()
	series, _ := BuildSeries(monthlySales(12, 10))
	f := e.seasonalFactors(series, "Stationery")
	assert.InDelta(t, 1.0, f.ThirtyDay, 1e-9)
	assert.InDelta(t, 0.8, f.NinetyDay, 1e-9)
}

func TestSeasonalFactorsPeakMonthBoost(t *testing.T) {
	e := testEngine()
	e.Now = func() time.Time { return time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC) }
	series, _ := BuildSeries(monthlySales(6, 10))
	f := e.seasonalFactors(series, "Electronics")
	assert.InDelta(t, 1.3, f.ThirtyDay, 1e-9)
}

func TestSeasonalFactorsClamped(t *testing.T) {
	e := testEngine()
	// eleven quiet months and a huge current month push the ratio past 2.0
	txs := monthlySales(12, 1)
	txs[len(txs)-1].Quantity = 500
	series, _ := BuildSeries(txs)

	f := e.seasonalFactors(series, "")
	assert.Equal(t, 2.0, f.ThirtyDay)
	assert.InDelta(t, 1.6, f.NinetyDay, 1e-9)

	// bounds hold for every category and history length
	for _, cat := range []string{"", "Electronics", "Clothing", "Food", "Other"} {
		for months := 0; months <= 24; months += 3 {
			s, _ := BuildSeries(monthlySales(months, 7))
			got := e.seasonalFactors(s, cat)
			assert.GreaterOrEqual(t, got.ThirtyDay, 0.5)
			assert.LessOrEqual(t, got.ThirtyDay, 2.0)
			assert.GreaterOrEqual(t, got.NinetyDay, 0.6)
			assert.LessOrEqual(t, got.NinetyDay, 1.8)
		}
	}
}

func TestSeasonalFactorsZeroMeanFallsBack(t *testing.T) {
	e := testEngine()
	series, _ := BuildSeries(monthlySales(12, 0))
	f := e.seasonalFactors(series, "")
	assert.Equal(t, 1.0, f.ThirtyDay)
}
