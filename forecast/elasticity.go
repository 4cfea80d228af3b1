package forecast

import "math"

const (
	defaultElasticity = -1.0
	minObservations   = 10
)

// PriceElasticity estimates the price elasticity of demand from
// period-over-period percentage changes. With fewer than 10 observations, or
// fewer than 2 usable change pairs, it returns the unit-elastic default -1.0.
// The estimate is advisory only and does not feed the demand calculation.
func PriceElasticity(series SalesSeries) float64 {
	if len(series) < minObservations {
		return defaultElasticity
	}

	var ratios []float64
	for i := 1; i < len(series); i++ {
		prevPrice := series[i-1].Price
		prevQty := float64(series[i-1].Quantity)
		if prevPrice == 0 || prevQty == 0 {
			// pct change over a zero base is not finite
			continue
		}
		priceChange := (series[i].Price - prevPrice) / prevPrice
		qtyChange := (float64(series[i].Quantity) - prevQty) / prevQty
		if priceChange == 0 {
			continue
		}
		ratio := qtyChange / priceChange
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			continue
		}
		ratios = append(ratios, ratio)
	}

	if len(ratios) < 2 {
		return defaultElasticity
	}

	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return clamp(sum/float64(len(ratios)), -3.0, -0.1)
}
