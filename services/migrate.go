package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// MigrateLegacyEstimateItems upgrades estimates stored with the old
// untagged line-item shapes (flat priced rows and material rows lived in
// separate formats) to the tagged-variant form, recomputing every cached
// total along the way. Safe to call on every startup — already-tagged
// documents are left alone.
func MigrateLegacyEstimateItems(app core.App) error {
	estimates, err := app.FindRecordsByFilter("estimates", "id != ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query estimates: %w", err)
	}

	migrated := 0
	for _, record := range estimates {
		items, err := DecodeItems(record)
		if err != nil {
			log.Printf("migrate: estimate %s has unreadable items, skipping: %v\n", record.Id, err)
			continue
		}
		if !hasUntaggedItems(record) || len(items) == 0 {
			continue
		}

		// RecalculateItems tags the rows by shape and rewrites the totals.
		ApplyItems(record, items)
		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to upgrade estimate %s: %v\n", record.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: upgraded %d estimate(s) to tagged line items\n", migrated)
	}
	return nil
}

// hasUntaggedItems inspects the raw items payload for rows without a kind
// discriminator.
func hasUntaggedItems(record interface{ Get(string) any }) bool {
	raw := record.Get("items")

	var data []byte
	switch v := raw.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return false
		}
		data = encoded
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return false
	}
	for _, row := range rows {
		if kind, _ := row["kind"].(string); kind == "" {
			return true
		}
	}
	return false
}
