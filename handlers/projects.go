package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleProjectList returns projects, optionally filtered by status or a
// substring search on the title.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		status := strings.TrimSpace(e.Request.URL.Query().Get("status"))

		filter := "id != ''"
		params := map[string]any{}
		if query != "" {
			filter = "title ~ {:q}"
			params["q"] = query
		}
		if status != "" {
			filter = "(" + filter + ") && status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("projects", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("project_list: could not query projects: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load projects")
		}
		return respondRecords(e, records)
	}
}

// HandleProjectView returns a project together with its systems, legal
// entities and access grants.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}

		systems, err := app.FindRecordsByFilter("systems", "project = {:id}", "name", 0, 0,
			map[string]any{"id": record.Id})
		if err != nil {
			log.Printf("project_view: could not query systems for %s: %v\n", record.Id, err)
		}
		entities, err := app.FindRecordsByFilter("legal_entities", "project = {:id}", "name", 0, 0,
			map[string]any{"id": record.Id})
		if err != nil {
			log.Printf("project_view: could not query legal entities for %s: %v\n", record.Id, err)
		}
		access, err := app.FindRecordsByFilter("project_access", "project = {:id}", "-granted_at", 0, 0,
			map[string]any{"id": record.Id})
		if err != nil {
			log.Printf("project_view: could not query access for %s: %v\n", record.Id, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project":       record.PublicExport(),
			"systems":       exportAll(systems),
			"legalEntities": exportAll(entities),
			"access":        exportAll(access),
		})
	}
}

// HandleProjectCreate creates a project.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Status      string  `json:"status"`
			StartDate   string  `json:"startDate"`
			EndDate     string  `json:"endDate"`
			Budget      float64 `json:"budget"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			return respondError(e, http.StatusBadRequest, "Title is required")
		}
		if req.Status == "" {
			req.Status = "active"
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create project")
		}

		record := core.NewRecord(col)
		record.Set("title", req.Title)
		record.Set("description", req.Description)
		record.Set("status", req.Status)
		record.Set("start_date", req.StartDate)
		record.Set("end_date", req.EndDate)
		record.Set("budget", req.Budget)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save project")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleProjectUpdate applies a partial update to a project.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		fields := map[string]string{
			"title":       "title",
			"description": "description",
			"status":      "status",
			"startDate":   "start_date",
			"endDate":     "end_date",
			"budget":      "budget",
		}
		for key, field := range fields {
			if value, ok := body[key]; ok {
				record.Set(field, value)
			}
		}
		if strings.TrimSpace(record.GetString("title")) == "" {
			return respondError(e, http.StatusBadRequest, "Title is required")
		}

		if err := app.Save(record); err != nil {
			log.Printf("project_update: could not save project %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save project")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleProjectDelete removes a project. Systems, legal entities, title
// pages and access grants cascade; estimates keep a stale reference.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: could not delete project %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete project")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleProjectStatuses lists the allowed project statuses for dropdowns.
func HandleProjectStatuses() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.ProjectStatuses)
	}
}

func exportAll(records []*core.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, record.PublicExport())
	}
	return out
}
