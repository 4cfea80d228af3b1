package forecast

import (
	"math"
	"sort"
	"time"
)

const (
	defaultConfidence    = 0.3
	daysRemainingForever = 999
	defaultLeadTimeDays  = 7
)

// Engine computes demand forecasts. It is stateless apart from its
// configuration and safe for concurrent use; every Compute call is a pure
// function of its inputs and the injected clock.
type Engine struct {
	Profiles            map[string]CategoryProfile
	Now                 func() time.Time
	DefaultLeadTimeDays int
}

// NewEngine returns an Engine with the default category profiles and clock.
func NewEngine() *Engine {
	return &Engine{
		Profiles:            DefaultCategoryProfiles(),
		Now:                 time.Now,
		DefaultLeadTimeDays: defaultLeadTimeDays,
	}
}

// Compute produces the forecast for one product from its context and its
// transaction snapshot. It never fails: products without history get the
// conservative default forecast.
func (e *Engine) Compute(p ProductContext, txs []Transaction) Result {
	series, _ := BuildSeries(txs)

	if len(series) == 0 {
		return e.defaultForecast(p)
	}

	category := ""
	if p.Category != nil {
		category = *p.Category
	}

	dailyAvg, dailyStd := quantityStats(series)
	seasonal := e.seasonalFactors(series, category)

	demand30 := int(dailyAvg * 30 * seasonal.ThirtyDay)
	demand90 := int(dailyAvg * 90 * seasonal.NinetyDay)
	if demand30 < 0 {
		demand30 = 0
	}
	if demand90 < 0 {
		demand90 = 0
	}

	dailyDemand := dailyAvg * seasonal.ThirtyDay
	daysRemaining := daysRemainingForever
	if dailyDemand > 0 {
		daysRemaining = int(float64(p.CurrentStock) / dailyDemand)
		if daysRemaining < 0 {
			daysRemaining = 0
		}
	}

	// two-standard-deviation safety stock
	buffer := 2 * dailyStd
	suggested := int(dailyDemand*30 - float64(p.CurrentStock) + buffer)
	if suggested < 0 {
		suggested = 0
	}

	return Result{
		ProductID:    p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		CurrentStock: p.CurrentStock,
		DemandForecast: DemandForecast{
			Next30Days: demand30,
			Next90Days: demand90,
		},
		StockHealth: StockHealth{
			DaysRemaining:          daysRemaining,
			SuggestedOrderQuantity: suggested,
		},
		VendorInfo:      e.vendorInfo(txs),
		PriceElasticity: PriceElasticity(series),
		ConfidenceScore: e.confidenceScore(series),
	}
}

// defaultForecast is the no-history path: demand sized off the minimum stock
// threshold instead of a computed average, fixed low confidence.
func (e *Engine) defaultForecast(p ProductContext) Result {
	daysRemaining := 0
	if p.CurrentStock > 0 {
		daysRemaining = daysRemainingForever
	}

	return Result{
		ProductID:    p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		CurrentStock: p.CurrentStock,
		DemandForecast: DemandForecast{
			Next30Days: 2 * p.MinStock,
			Next90Days: 6 * p.MinStock,
		},
		StockHealth: StockHealth{
			DaysRemaining:          daysRemaining,
			SuggestedOrderQuantity: p.MinStock,
		},
		VendorInfo: VendorInfo{
			Name:         "Unknown",
			LeadTimeDays: e.DefaultLeadTimeDays,
		},
		PriceElasticity: defaultElasticity,
		ConfidenceScore: defaultConfidence,
	}
}

// vendorInfo estimates the latest vendor's lead time as the average
// inter-delivery interval of its inbound transactions, falling back to the
// default when fewer than two deliveries exist.
func (e *Engine) vendorInfo(txs []Transaction) VendorInfo {
	// Only inbound receipts carry a vendor; sales must not mask the
	// delivery history.
	var latest *Transaction
	for i := range txs {
		if txs[i].Quantity <= 0 {
			continue
		}
		if latest == nil || !txs[i].Timestamp.Before(latest.Timestamp) {
			latest = &txs[i]
		}
	}
	if latest == nil {
		return VendorInfo{Name: "Unknown", LeadTimeDays: e.DefaultLeadTimeDays}
	}

	name := latest.VendorName
	if name == "" {
		name = "Unknown"
	}

	var deliveries []time.Time
	for _, tx := range txs {
		if tx.VendorID == latest.VendorID && tx.Quantity > 0 {
			deliveries = append(deliveries, tx.Timestamp)
		}
	}
	if len(deliveries) < 2 {
		return VendorInfo{Name: name, LeadTimeDays: e.DefaultLeadTimeDays}
	}

	sort.Slice(deliveries, func(i, j int) bool { return deliveries[i].Before(deliveries[j]) })
	var totalDays float64
	for i := 1; i < len(deliveries); i++ {
		totalDays += deliveries[i].Sub(deliveries[i-1]).Hours() / 24
	}
	leadTime := int(math.Round(totalDays / float64(len(deliveries)-1)))
	if leadTime <= 0 {
		leadTime = e.DefaultLeadTimeDays
	}

	return VendorInfo{Name: name, LeadTimeDays: leadTime}
}
