package forecast

import "time"

// CategoryProfile describes the peak months and demand boost for a product
// category. Profiles are configuration owned by the Engine so the table can
// be swapped without touching the algorithm.
type CategoryProfile struct {
	PeakMonths []time.Month
	Boost      float64
}

// DefaultCategoryProfiles are the built-in category adjustments.
func DefaultCategoryProfiles() map[string]CategoryProfile {
	allMonths := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		allMonths = append(allMonths, m)
	}
	return map[string]CategoryProfile{
		"Electronics": {PeakMonths: []time.Month{time.November, time.December}, Boost: 1.3},
		"Clothing":    {PeakMonths: []time.Month{time.March, time.September}, Boost: 1.2},
		"Food":        {PeakMonths: allMonths, Boost: 1.1},
	}
}

func (p CategoryProfile) isPeak(m time.Month) bool {
	for _, pm := range p.PeakMonths {
		if pm == m {
			return true
		}
	}
	return false
}

// seasonalFactors derives the multiplicative demand adjustments for the
// 30-day and 90-day horizons from monthly aggregates and the category table.
// Fewer than 12 distinct month buckets means there is not enough history to
// detect a yearly cycle, so the base factor stays neutral.
func (e *Engine) seasonalFactors(series SalesSeries, category string) SeasonalFactor {
	if len(series) == 0 {
		return SeasonalFactor{ThirtyDay: 1.0, NinetyDay: 1.0}
	}

	currentMonth := e.Now().Month()

	type monthKey struct {
		year  int
		month time.Month
	}
	buckets := make(map[monthKey]float64)
	for _, p := range series {
		key := monthKey{year: p.Timestamp.Year(), month: p.Timestamp.Month()}
		buckets[key] += float64(p.Quantity)
	}

	factor := 1.0
	if len(buckets) >= 12 {
		var total, monthTotal float64
		monthBuckets := 0
		for key, sum := range buckets {
			total += sum
			if key.month == currentMonth {
				monthTotal += sum
				monthBuckets++
			}
		}
		overallAvg := total / float64(len(buckets))
		if overallAvg > 0 && monthBuckets > 0 {
			factor = (monthTotal / float64(monthBuckets)) / overallAvg
		}
	}

	if profile, ok := e.Profiles[category]; ok && profile.isPeak(currentMonth) {
		factor *= profile.Boost
	}

	thirty := clamp(factor, 0.5, 2.0)
	return SeasonalFactor{
		ThirtyDay: thirty,
		NinetyDay: clamp(thirty*0.8, 0.6, 1.8),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
