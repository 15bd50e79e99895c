package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

var titlePageFields = map[string]string{
	"documentTitle":         "document_title",
	"city":                  "city",
	"address":               "address",
	"year":                  "year",
	"approvedBy":            "approved_by",
	"approvedDate":          "approved_date",
	"developerName":         "developer_name",
	"developerPosition":     "developer_position",
	"chiefEngineerName":     "chief_engineer_name",
	"chiefEngineerPosition": "chief_engineer_position",
}

// HandleTitlePageList returns the title pages of a project.
func HandleTitlePageList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		records, err := app.FindRecordsByFilter("title_pages", "project = {:project}", "-created", 0, 0,
			map[string]any{"project": projectID})
		if err != nil {
			log.Printf("title_page_list: could not query title pages: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load title pages")
		}
		return respondRecords(e, records)
	}
}

// HandleTitlePageCreate adds a title page to a project. A template id may
// be passed to prefill the static fields before the body overrides apply.
func HandleTitlePageCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		col, err := app.FindCollectionByNameOrId("title_pages")
		if err != nil {
			log.Printf("title_page_create: could not find title_pages collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create title page")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)

		if templateID, _ := body["template"].(string); templateID != "" {
			template, err := app.FindRecordById("title_page_templates", templateID)
			if err != nil {
				return respondError(e, http.StatusNotFound, "Template not found")
			}
			for _, field := range []string{"document_title", "city", "year", "approved_by", "developer_position", "chief_engineer_position"} {
				record.Set(field, template.GetString(field))
			}
		}

		applyTitlePageFields(record, body)
		if strings.TrimSpace(record.GetString("document_title")) == "" {
			return respondError(e, http.StatusBadRequest, "Document title is required")
		}

		if err := app.Save(record); err != nil {
			log.Printf("title_page_create: could not save title page: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save title page")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleTitlePageUpdate applies a partial update to a title page.
func HandleTitlePageUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("title_pages", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Title page not found")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		applyTitlePageFields(record, body)
		if strings.TrimSpace(record.GetString("document_title")) == "" {
			return respondError(e, http.StatusBadRequest, "Document title is required")
		}

		if err := app.Save(record); err != nil {
			log.Printf("title_page_update: could not save title page %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save title page")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleTitlePageDelete removes a title page.
func HandleTitlePageDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("title_pages", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Title page not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("title_page_delete: could not delete title page %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete title page")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleTitlePagePDF renders a title page as a downloadable PDF.
func HandleTitlePagePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("title_pages", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Title page not found")
		}

		data := services.TitlePageData{
			DocumentTitle:         record.GetString("document_title"),
			City:                  record.GetString("city"),
			Address:               record.GetString("address"),
			Year:                  record.GetString("year"),
			ApprovedBy:            record.GetString("approved_by"),
			ApprovedDate:          record.GetString("approved_date"),
			DeveloperName:         record.GetString("developer_name"),
			DeveloperPosition:     record.GetString("developer_position"),
			ChiefEngineerName:     record.GetString("chief_engineer_name"),
			ChiefEngineerPosition: record.GetString("chief_engineer_position"),
		}
		if project, err := app.FindRecordById("projects", record.GetString("project")); err == nil {
			data.ProjectTitle = project.GetString("title")
		}

		pdf, err := services.GenerateTitlePagePDF(data)
		if err != nil {
			log.Printf("title_page_pdf: could not render %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not generate PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "title_page_"+record.Id+".pdf"))
		_, err = e.Response.Write(pdf)
		return err
	}
}

func applyTitlePageFields(record *core.Record, body map[string]any) {
	for key, field := range titlePageFields {
		if value, ok := body[key]; ok {
			record.Set(field, value)
		}
	}
}
