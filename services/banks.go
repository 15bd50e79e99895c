package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// bankSyncInterval is how long an imported directory stays fresh.
const bankSyncInterval = 24 * time.Hour

// UpdateBank applies field updates to a manually entered bank. Returns false
// when the bank does not exist or was imported from the directory —
// api-sourced rows are immutable.
func UpdateBank(app core.App, bankID string, fields map[string]any) bool {
	record, err := app.FindRecordById("banks", bankID)
	if err != nil {
		return false
	}
	if record.GetString("source") == BankSourceAPI {
		return false
	}

	for name, value := range fields {
		if name == "source" {
			continue
		}
		record.Set(name, value)
	}
	if err := app.Save(record); err != nil {
		log.Printf("banks: could not update bank %s: %v", bankID, err)
		return false
	}
	return true
}

// DeleteBank removes a manually entered bank. Returns false for unknown ids
// and for api-sourced rows.
func DeleteBank(app core.App, bankID string) bool {
	record, err := app.FindRecordById("banks", bankID)
	if err != nil {
		return false
	}
	if record.GetString("source") == BankSourceAPI {
		return false
	}
	if err := app.Delete(record); err != nil {
		log.Printf("banks: could not delete bank %s: %v", bankID, err)
		return false
	}
	return true
}

// FindBankByBIC returns the bank with the exact BIC, or nil.
func FindBankByBIC(app core.App, bic string) *core.Record {
	records, err := app.FindRecordsByFilter(
		"banks",
		"bic = {:bic}",
		"", 1, 0,
		map[string]any{"bic": bic},
	)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}

// BankDirectoryStale reports whether the imported directory rows are older
// than the sync interval (or absent entirely).
func BankDirectoryStale(app core.App) bool {
	records, err := app.FindRecordsByFilter(
		"banks",
		"source = {:src}",
		"-updated", 1, 0,
		map[string]any{"src": BankSourceAPI},
	)
	if err != nil || len(records) == 0 {
		return true
	}
	return time.Since(records[0].GetDateTime("updated").Time()) > bankSyncInterval
}

// SyncBankDirectory refreshes the api-sourced bank rows from the central
// bank's BIC directory. Manually entered banks are untouched. When force is
// false and the current rows are still fresh, the sync is skipped.
// Returns the number of imported rows.
func SyncBankDirectory(ctx context.Context, app core.App, client *http.Client, url string, force bool) (int, error) {
	if !force && !BankDirectoryStale(app) {
		return 0, nil
	}

	banks, err := FetchBankDirectory(ctx, client, url)
	if err != nil {
		return 0, err
	}

	collection, err := app.FindCollectionByNameOrId("banks")
	if err != nil {
		return 0, fmt.Errorf("banks collection: %w", err)
	}

	imported := 0
	err = app.RunInTransaction(func(txApp core.App) error {
		existing, err := txApp.FindRecordsByFilter(
			"banks",
			"source = {:src}",
			"", 0, 0,
			map[string]any{"src": BankSourceAPI},
		)
		if err != nil {
			return fmt.Errorf("list imported banks: %w", err)
		}
		for _, record := range existing {
			if err := txApp.Delete(record); err != nil {
				return fmt.Errorf("drop imported bank %s: %w", record.Id, err)
			}
		}

		for _, bank := range banks {
			record := core.NewRecord(collection)
			record.Set("bic", bank.BIC)
			record.Set("name", bank.Name)
			record.Set("correspondent_account", bank.CorrespondentAccount)
			record.Set("source", BankSourceAPI)
			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("save bank %s: %w", bank.BIC, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("banks: imported %d directory entries", imported)
	return imported, nil
}
