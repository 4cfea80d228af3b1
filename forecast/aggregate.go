package forecast

import "sort"

// BuildSeries reduces a raw transaction snapshot into a SalesSeries sorted
// ascending by timestamp plus the signed-sum stock level. Ties keep the
// original transaction order. An empty snapshot yields an empty series and
// stock 0, the normal new-product case.
func BuildSeries(txs []Transaction) (SalesSeries, int) {
	series := make(SalesSeries, 0, len(txs))
	stock := 0
	for _, tx := range txs {
		stock += tx.Quantity
		series = append(series, SalesPoint{
			Timestamp: tx.Timestamp,
			Quantity:  tx.Quantity,
			Price:     tx.UnitPrice.InexactFloat64(),
		})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	return series, stock
}
