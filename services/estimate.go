package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

// Line item kinds. Historically the data carried two parallel shapes — a
// flat priced row and a material row with nested work entries. They are now
// one tagged variant so a single derivation path computes every total.
const (
	LineKindSimple   = "simple"
	LineKindMaterial = "material"
)

// WorkEntry is a priced labor/operation row attached to a material line.
// WorkName and UnitID are snapshots taken when the entry was created;
// later catalog edits do not propagate into stored estimates.
type WorkEntry struct {
	ID           string   `json:"id"`
	WorkID       string   `json:"workId"`
	WorkName     string   `json:"workName"`
	UnitID       string   `json:"unitId"`
	Quantity     float64  `json:"quantity"`
	PricePerUnit *float64 `json:"pricePerUnit"`
	TotalCost    *float64 `json:"totalCost"`
}

// LineItem is one row of an estimate. Kind selects which fields are
// meaningful: a simple line prices itself (Price × Quantity), a material
// line derives its total from its work entries.
type LineItem struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Kind   string `json:"kind"`

	// Simple line fields.
	Code     string   `json:"code,omitempty"`
	Name     string   `json:"name,omitempty"`
	UnitID   string   `json:"unitId,omitempty"`
	Quantity float64  `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`

	// Material line fields. MaterialName is a snapshot, same as WorkName.
	MaterialID   string      `json:"materialId,omitempty"`
	MaterialName string      `json:"materialName,omitempty"`
	Works        []WorkEntry `json:"works,omitempty"`

	Notes     string   `json:"notes,omitempty"`
	TotalCost *float64 `json:"totalCost"`
}

// ItemTotal derives the total of one line item without mutating it.
// A simple line is nil when unpriced; a material line is always the sum of
// its work totals (unpriced entries count as zero, an empty list is zero).
func ItemTotal(item LineItem) *float64 {
	if item.Kind == LineKindMaterial {
		totals := make([]*float64, 0, len(item.Works))
		for _, w := range item.Works {
			totals = append(totals, LineTotal(w.PricePerUnit, w.Quantity))
		}
		sum := WorksTotal(totals)
		return &sum
	}
	return LineTotal(item.Price, item.Quantity)
}

// RecalculateItems rewrites every derived total in place and returns the
// estimate total. It also normalizes the rows: missing ids are generated,
// missing kinds default by shape, and zero position numbers are filled in
// sequentially.
func RecalculateItems(items []LineItem) float64 {
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Number == 0 {
			item.Number = i + 1
		}
		if item.Kind == "" {
			if item.MaterialID != "" || len(item.Works) > 0 {
				item.Kind = LineKindMaterial
			} else {
				item.Kind = LineKindSimple
			}
		}
		for wi := range item.Works {
			w := &item.Works[wi]
			if w.ID == "" {
				w.ID = uuid.NewString()
			}
			w.TotalCost = LineTotal(w.PricePerUnit, w.Quantity)
		}
		item.TotalCost = ItemTotal(*item)
	}

	totals := make([]*float64, 0, len(items))
	for i := range items {
		totals = append(totals, items[i].TotalCost)
	}
	return EstimateTotal(totals)
}

// DecodeItems reads the embedded line items from an estimate record.
// A missing or empty field decodes to no items.
func DecodeItems(record *core.Record) ([]LineItem, error) {
	raw := record.Get("items")

	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode items: %w", err)
		}
		data = encoded
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// ApplyItems recalculates totals and writes items plus the cached estimate
// total onto the record.
func ApplyItems(record *core.Record, items []LineItem) {
	total := RecalculateItems(items)
	record.Set("items", items)
	record.Set("total_cost", total)
}

// RegisterEstimateHooks recomputes totals on the write path so that
// total_cost always equals the sum of line totals, no matter what the
// caller sent. Unreadable item payloads are left as-is and logged — a bad
// document should still be saveable and fixable from the editor.
func RegisterEstimateHooks(app core.App) {
	recalc := func(e *core.RecordEvent) error {
		items, err := DecodeItems(e.Record)
		if err != nil {
			log.Printf("estimate_hooks: estimate %s has unreadable items: %v", e.Record.Id, err)
			return e.Next()
		}
		ApplyItems(e.Record, items)
		return e.Next()
	}

	app.OnRecordCreate("estimates").BindFunc(recalc)
	app.OnRecordUpdate("estimates").BindFunc(recalc)
}
