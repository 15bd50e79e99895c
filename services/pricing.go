// Package services provides the business logic behind the admin panel:
// estimate pricing, catalog rules, imports, exports and mail delivery.
package services

// LineTotal derives the total of a single priced row. A nil price means the
// row is unpriced and the result is nil — distinct from a zero-cost row.
// No rounding is applied; display formatting is a presentation concern.
func LineTotal(price *float64, quantity float64) *float64 {
	if price == nil {
		return nil
	}
	total := *price * quantity
	return &total
}

// WorksTotal sums work-entry totals for a material line. Unpriced entries
// contribute zero.
func WorksTotal(totals []*float64) float64 {
	var sum float64
	for _, t := range totals {
		if t != nil {
			sum += *t
		}
	}
	return sum
}

// EstimateTotal sums line-item totals, treating unpriced lines as zero.
// An unpriced line never makes the whole estimate "unknown".
func EstimateTotal(itemTotals []*float64) float64 {
	var sum float64
	for _, t := range itemTotals {
		if t != nil {
			sum += *t
		}
	}
	return sum
}
