package services

import "testing"

func TestFormatRUB(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect string
	}{
		{"zero", 0, "0,00 ₽"},
		{"small", 450, "450,00 ₽"},
		{"thousands", 12345.5, "12 345,50 ₽"},
		{"millions", 1234567.89, "1 234 567,89 ₽"},
		{"exactly three digits", 999, "999,00 ₽"},
		{"four digits", 1000, "1 000,00 ₽"},
		{"negative", -4500.4, "-4 500,40 ₽"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRUB(tt.amount); got != tt.expect {
				t.Errorf("FormatRUB(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}
