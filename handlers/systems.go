package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSystemList returns the engineering systems of a project.
func HandleSystemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		records, err := app.FindRecordsByFilter("systems", "project = {:project}", "name", 0, 0,
			map[string]any{"project": projectID})
		if err != nil {
			log.Printf("system_list: could not query systems: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load systems")
		}
		return respondRecords(e, records)
	}
}

// HandleSystemCreate adds an engineering system to a project.
func HandleSystemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}

		var req struct {
			Name          string `json:"name"`
			Description   string `json:"description"`
			Type          string `json:"type"`
			Status        string `json:"status"`
			ClientCurator string `json:"clientCurator"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return respondError(e, http.StatusBadRequest, "Name is required")
		}
		if req.Status == "" {
			req.Status = "active"
		}

		col, err := app.FindCollectionByNameOrId("systems")
		if err != nil {
			log.Printf("system_create: could not find systems collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create system")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("name", req.Name)
		record.Set("description", req.Description)
		record.Set("type", req.Type)
		record.Set("status", req.Status)
		record.Set("client_curator", req.ClientCurator)

		if err := app.Save(record); err != nil {
			log.Printf("system_create: could not save system: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save system")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleSystemUpdate applies a partial update to a system.
func HandleSystemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("systems", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "System not found")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		fields := map[string]string{
			"name":          "name",
			"description":   "description",
			"type":          "type",
			"status":        "status",
			"clientCurator": "client_curator",
		}
		for key, field := range fields {
			if value, ok := body[key]; ok {
				record.Set(field, value)
			}
		}
		if strings.TrimSpace(record.GetString("name")) == "" {
			return respondError(e, http.StatusBadRequest, "Name is required")
		}

		if err := app.Save(record); err != nil {
			log.Printf("system_update: could not save system %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save system")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleSystemDelete removes a system.
func HandleSystemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("systems", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "System not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("system_delete: could not delete system %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete system")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}
