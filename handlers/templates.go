package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var templateFields = map[string]string{
	"name":                  "name",
	"description":           "description",
	"documentTitle":         "document_title",
	"city":                  "city",
	"year":                  "year",
	"approvedBy":            "approved_by",
	"developerPosition":     "developer_position",
	"chiefEngineerPosition": "chief_engineer_position",
}

// HandleTemplateList returns all title page templates.
func HandleTemplateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("title_page_templates", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("template_list: could not query templates: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load templates")
		}
		return respondRecords(e, records)
	}
}

// HandleTemplateCreate adds a custom title page template.
func HandleTemplateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		col, err := app.FindCollectionByNameOrId("title_page_templates")
		if err != nil {
			log.Printf("template_create: could not find templates collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create template")
		}

		record := core.NewRecord(col)
		applyTemplateFields(record, body)
		record.Set("is_default", false)
		if msg := validateTemplate(record); msg != "" {
			return respondError(e, http.StatusBadRequest, msg)
		}

		if err := app.Save(record); err != nil {
			log.Printf("template_create: could not save template: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save template")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleTemplateUpdate edits a custom template. The built-in defaults are
// read-only and answer 403; duplicate them instead.
func HandleTemplateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("title_page_templates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Template not found")
		}
		if record.GetBool("is_default") {
			return respondError(e, http.StatusForbidden, "Built-in templates cannot be edited")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		applyTemplateFields(record, body)
		if msg := validateTemplate(record); msg != "" {
			return respondError(e, http.StatusBadRequest, msg)
		}

		if err := app.Save(record); err != nil {
			log.Printf("template_update: could not save template %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save template")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleTemplateDelete removes a custom template; defaults answer 403.
func HandleTemplateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("title_page_templates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Template not found")
		}
		if record.GetBool("is_default") {
			return respondError(e, http.StatusForbidden, "Built-in templates cannot be deleted")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("template_delete: could not delete template %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete template")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleTemplateDuplicate copies a template into an editable one.
func HandleTemplateDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		source, err := app.FindRecordById("title_page_templates", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Template not found")
		}

		col, err := app.FindCollectionByNameOrId("title_page_templates")
		if err != nil {
			log.Printf("template_duplicate: could not find templates collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not duplicate template")
		}

		record := core.NewRecord(col)
		for _, field := range templateFields {
			record.Set(field, source.Get(field))
		}
		record.Set("name", source.GetString("name")+" (копия)")
		record.Set("is_default", false)

		if err := app.Save(record); err != nil {
			log.Printf("template_duplicate: could not save copy of %s: %v\n", source.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not duplicate template")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

func applyTemplateFields(record *core.Record, body map[string]any) {
	for key, field := range templateFields {
		if value, ok := body[key]; ok {
			if s, isString := value.(string); isString && key != "documentTitle" {
				value = strings.TrimSpace(s)
			}
			record.Set(field, value)
		}
	}
}

func validateTemplate(record *core.Record) string {
	if strings.TrimSpace(record.GetString("name")) == "" {
		return "Name is required"
	}
	if strings.TrimSpace(record.GetString("document_title")) == "" {
		return "Document title is required"
	}
	return ""
}
