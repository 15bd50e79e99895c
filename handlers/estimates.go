package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// estimateRequest is the JSON body for estimate create and update.
type estimateRequest struct {
	Number  string              `json:"number"`
	Name    string              `json:"name"`
	Project string              `json:"project"`
	Date    string              `json:"date"`
	Status  string              `json:"status"`
	Notes   string              `json:"notes"`
	Items   []services.LineItem `json:"items"`
}

// HandleEstimateList returns estimates, optionally filtered by project or a
// substring search over number and name.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		projectID := strings.TrimSpace(e.Request.URL.Query().Get("project"))

		filter := "id != ''"
		params := map[string]any{}
		if query != "" {
			filter = "number ~ {:q} || name ~ {:q}"
			params["q"] = query
		}
		if projectID != "" {
			filter = "(" + filter + ") && project = {:project}"
			params["project"] = projectID
		}

		records, err := app.FindRecordsByFilter("estimates", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("estimate_list: could not query estimates: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load estimates")
		}
		return respondRecords(e, records)
	}
}

// HandleEstimateView returns one estimate with its line items.
func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Estimate not found")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleEstimateCreate creates an estimate. Line items are renumbered and
// every total is recomputed before the record is stored; an omitted number
// is generated from the yearly sequence.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req estimateRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return respondError(e, http.StatusBadRequest, "Name is required")
		}

		if req.Number == "" {
			req.Number = services.NextEstimateNumber(app, time.Now())
		}

		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_create: could not find estimates collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create estimate")
		}

		record := core.NewRecord(col)
		record.Set("number", req.Number)
		record.Set("name", req.Name)
		record.Set("project", req.Project)
		record.Set("date", req.Date)
		record.Set("status", req.Status)
		record.Set("notes", req.Notes)
		services.ApplyItems(record, req.Items)

		if err := app.Save(record); err != nil {
			log.Printf("estimate_create: could not save estimate: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save estimate")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleEstimateUpdate replaces the estimate fields and items. Totals are
// recomputed on every write, so a stale total_cost sent by a client is
// always overwritten.
func HandleEstimateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Estimate not found")
		}

		var req estimateRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(req.Name) == "" {
			return respondError(e, http.StatusBadRequest, "Name is required")
		}
		if req.Number == "" {
			req.Number = record.GetString("number")
		}

		record.Set("number", req.Number)
		record.Set("name", strings.TrimSpace(req.Name))
		record.Set("project", req.Project)
		record.Set("date", req.Date)
		record.Set("status", req.Status)
		record.Set("notes", req.Notes)
		services.ApplyItems(record, req.Items)

		if err := app.Save(record); err != nil {
			log.Printf("estimate_update: could not save estimate %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save estimate")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleEstimateDelete removes an estimate.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Estimate not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("estimate_delete: could not delete estimate %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete estimate")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleEstimateNextNumber returns the next free number in the yearly
// sequence without reserving it.
func HandleEstimateNextNumber(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		number := services.NextEstimateNumber(app, time.Now())
		return e.JSON(http.StatusOK, map[string]any{"number": number})
	}
}

// HandleEstimateExport streams the estimate as an .xlsx workbook.
func HandleEstimateExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.BuildEstimateExport(app, e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Estimate not found")
		}

		buf, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("estimate_export: could not build workbook: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not generate export")
		}

		fileName := fmt.Sprintf("estimate_%s.xlsx", sanitizeFileName(data.Number))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		_, err = e.Response.Write(buf)
		return err
	}
}

// sanitizeFileName keeps download names safe for Content-Disposition.
func sanitizeFileName(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "\"", "", " ", "_")
	return replacer.Replace(s)
}
