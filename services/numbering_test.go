package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestFormatEstimateNumber(t *testing.T) {
	tests := []struct {
		year     int
		sequence int
		expect   string
	}{
		{2026, 1, "СМ-2026-001"},
		{2026, 42, "СМ-2026-042"},
		{2027, 1000, "СМ-2027-1000"},
	}

	for _, tt := range tests {
		if got := formatEstimateNumber(tt.year, tt.sequence); got != tt.expect {
			t.Errorf("formatEstimateNumber(%d, %d) = %q, want %q", tt.year, tt.sequence, got, tt.expect)
		}
	}
}

func TestNextEstimateNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if got := NextEstimateNumber(app, now); got != "СМ-2026-001" {
		t.Fatalf("first number = %q, want СМ-2026-001", got)
	}

	for i := 1; i <= 3; i++ {
		testhelpers.CreateTestEstimate(t, app,
			fmt.Sprintf("СМ-2026-%03d", i), fmt.Sprintf("Смета %d", i), nil)
	}
	// A previous year's estimate must not advance this year's sequence.
	testhelpers.CreateTestEstimate(t, app, "СМ-2025-001", "Старая смета", nil)

	if got := NextEstimateNumber(app, now); got != "СМ-2026-004" {
		t.Errorf("next number = %q, want СМ-2026-004", got)
	}
}
