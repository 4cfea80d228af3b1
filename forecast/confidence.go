package forecast

import "math"

// confidenceScore rates forecast trustworthiness in [0.1, 1.0] from data
// volume, relative variance and recency. An empty series scores the fixed
// low-confidence default 0.3.
func (e *Engine) confidenceScore(series SalesSeries) float64 {
	if len(series) == 0 {
		return defaultConfidence
	}

	dataPoints := float64(len(series)) / 100
	if dataPoints > 0.4 {
		dataPoints = 0.4
	}

	mean, std := quantityStats(series)
	consistency := 0.0
	if mean != 0 {
		consistency = 0.3 * (1 - std/mean)
	}

	latest := series[len(series)-1].Timestamp
	daysSince := e.Now().Sub(latest).Hours() / 24
	recency := 0.3 * (1 - daysSince/365)

	return clamp(dataPoints+consistency+recency, 0.1, 1.0)
}

// quantityStats returns the mean and sample standard deviation of the
// series quantities. Std is 0 for fewer than 2 observations.
func quantityStats(series SalesSeries) (mean, std float64) {
	n := float64(len(series))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, p := range series {
		sum += float64(p.Quantity)
	}
	mean = sum / n
	if n < 2 {
		return mean, 0
	}
	var sq float64
	for _, p := range series {
		d := float64(p.Quantity) - mean
		sq += d * d
	}
	std = math.Sqrt(sq / (n - 1))
	return mean, std
}
