package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleBankList returns banks, optionally filtered by a substring match on
// BIC or name.
func HandleBankList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		filter := "id != ''"
		params := map[string]any{}
		if query != "" {
			filter = "bic ~ {:q} || name ~ {:q}"
			params["q"] = query
		}

		records, err := app.FindRecordsByFilter("banks", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("bank_list: could not query banks: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load banks")
		}
		return respondRecords(e, records)
	}
}

// HandleBankCreate adds a manual bank entry. The source is always forced to
// manual; rows from the directory sync can only be created by the sync.
func HandleBankCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			BIC         string `json:"bic"`
			Name        string `json:"name"`
			CorrAccount string `json:"correspondentAccount"`
			City        string `json:"city"`
			Address     string `json:"address"`
			Phone       string `json:"phone"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.BIC = strings.TrimSpace(req.BIC)
		req.Name = strings.TrimSpace(req.Name)
		if req.BIC == "" || req.Name == "" {
			return respondError(e, http.StatusBadRequest, "BIC and name are required")
		}
		if existing := services.FindBankByBIC(app, req.BIC); existing != nil {
			return respondError(e, http.StatusConflict, "A bank with this BIC already exists")
		}

		col, err := app.FindCollectionByNameOrId("banks")
		if err != nil {
			log.Printf("bank_create: could not find banks collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create bank")
		}

		record := core.NewRecord(col)
		record.Set("bic", req.BIC)
		record.Set("name", req.Name)
		record.Set("correspondent_account", req.CorrAccount)
		record.Set("city", req.City)
		record.Set("address", req.Address)
		record.Set("phone", req.Phone)
		record.Set("source", services.BankSourceManual)

		if err := app.Save(record); err != nil {
			log.Printf("bank_create: could not save bank: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save bank")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleBankUpdate edits a manual bank. Directory rows are read-only and
// answer 403.
func HandleBankUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		if !services.UpdateBank(app, e.Request.PathValue("id"), body) {
			return respondError(e, http.StatusForbidden, "Directory banks cannot be edited")
		}

		record, err := app.FindRecordById("banks", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Bank not found")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleBankDelete removes a manual bank. Directory rows answer 403.
func HandleBankDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, err := app.FindRecordById("banks", e.Request.PathValue("id")); err != nil {
			return respondError(e, http.StatusNotFound, "Bank not found")
		}
		if !services.DeleteBank(app, e.Request.PathValue("id")) {
			return respondError(e, http.StatusForbidden, "Directory banks cannot be deleted")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleBankSync refreshes the directory rows from the central bank feed.
// Without force=true the sync is skipped while the cached rows are fresh.
func HandleBankSync(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		force := e.Request.URL.Query().Get("force") == "true"

		client := &http.Client{Timeout: 30 * time.Second}
		count, err := services.SyncBankDirectory(e.Request.Context(), app, client, services.DefaultBankDirectoryURL, force)
		if err != nil {
			log.Printf("bank_sync: %v\n", err)
			return respondError(e, http.StatusBadGateway, "Bank directory sync failed")
		}
		return e.JSON(http.StatusOK, map[string]any{"synced": count})
	}
}
