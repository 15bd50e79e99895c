package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// formatEstimateNumber constructs the suggested estimate number.
func formatEstimateNumber(year int, sequence int) string {
	return fmt.Sprintf("СМ-%d-%03d", year, sequence)
}

// NextEstimateNumber suggests the next estimate number for the current
// calendar year: СМ-{year}-{sequence}. The number is only a suggestion —
// the editor may overwrite it, so uniqueness is not enforced here.
func NextEstimateNumber(app core.App, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("СМ-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"estimates",
		"number ~ {:prefix}",
		"", 0, 0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return formatEstimateNumber(year, len(existing)+1)
}
