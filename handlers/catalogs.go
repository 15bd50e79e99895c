package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// catalogConfig describes one CRUD-able directory collection. The admin
// panel edits all of them through the same JSON surface, so the handlers
// are built from this table instead of being written five times.
type catalogConfig struct {
	collection   string
	fields       []string
	searchFields []string
	required     []string
	sort         string
}

var catalogs = map[string]catalogConfig{
	"materials": {
		collection:   "materials",
		fields:       []string{"type", "code", "article_number", "name", "description", "unit", "price", "manufacturer", "notes"},
		searchFields: []string{"code", "article_number", "name", "manufacturer"},
		required:     []string{"code", "name"},
		sort:         "name",
	},
	"units": {
		collection:   "units",
		fields:       []string{"code", "name", "full_name", "category"},
		searchFields: []string{"code", "name", "full_name"},
		required:     []string{"name"},
		sort:         "name",
	},
	"works": {
		collection:   "works",
		fields:       []string{"code", "name", "description", "unit", "price_per_unit"},
		searchFields: []string{"code", "name"},
		required:     []string{"name"},
		sort:         "name",
	},
	"persons": {
		collection:   "persons",
		fields:       []string{"last_name", "first_name", "middle_name", "position", "phone", "email", "notes"},
		searchFields: []string{"last_name", "first_name", "position"},
		required:     []string{"last_name", "first_name"},
		sort:         "last_name",
	},
	"legal_entities": {
		collection:   "legal_entities",
		fields:       []string{"project", "name", "inn", "kpp", "ogrn", "legal_address", "actual_address", "director_name", "phone", "email"},
		searchFields: []string{"name", "inn"},
		required:     []string{"name"},
		sort:         "name",
	},
}

func catalogFromPath(e *core.RequestEvent) (catalogConfig, bool) {
	cfg, ok := catalogs[e.Request.PathValue("catalog")]
	return cfg, ok
}

// HandleCatalogList returns all records of a catalog, optionally filtered
// by a case-insensitive substring query on the catalog's search fields.
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, ok := catalogFromPath(e)
		if !ok {
			return respondError(e, http.StatusNotFound, "Unknown catalog")
		}

		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		filter := "id != ''"
		params := map[string]any{}
		if query != "" {
			parts := make([]string, 0, len(cfg.searchFields))
			for _, f := range cfg.searchFields {
				parts = append(parts, f+" ~ {:q}")
			}
			filter = strings.Join(parts, " || ")
			params["q"] = query
		}

		records, err := app.FindRecordsByFilter(cfg.collection, filter, cfg.sort, 0, 0, params)
		if err != nil {
			log.Printf("catalog_list: could not query %s: %v\n", cfg.collection, err)
			return respondError(e, http.StatusInternalServerError, "Could not load records")
		}
		return respondRecords(e, records)
	}
}

// HandleCatalogView returns a single catalog record.
func HandleCatalogView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, ok := catalogFromPath(e)
		if !ok {
			return respondError(e, http.StatusNotFound, "Unknown catalog")
		}

		record, err := app.FindRecordById(cfg.collection, e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Record not found")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleCatalogCreate creates a catalog record from a JSON body. Only the
// fields listed in the catalog config are accepted.
func HandleCatalogCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, ok := catalogFromPath(e)
		if !ok {
			return respondError(e, http.StatusNotFound, "Unknown catalog")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if msg := missingRequired(cfg, body); msg != "" {
			return respondError(e, http.StatusBadRequest, msg)
		}

		col, err := app.FindCollectionByNameOrId(cfg.collection)
		if err != nil {
			log.Printf("catalog_create: could not find %s: %v\n", cfg.collection, err)
			return respondError(e, http.StatusInternalServerError, "Could not create record")
		}

		record := core.NewRecord(col)
		applyCatalogFields(record, cfg, body)
		if err := app.Save(record); err != nil {
			log.Printf("catalog_create: could not save %s record: %v\n", cfg.collection, err)
			return respondError(e, http.StatusBadRequest, "Could not save record")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleCatalogUpdate applies a partial JSON update to a catalog record.
func HandleCatalogUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, ok := catalogFromPath(e)
		if !ok {
			return respondError(e, http.StatusNotFound, "Unknown catalog")
		}

		record, err := app.FindRecordById(cfg.collection, e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Record not found")
		}

		body := map[string]any{}
		if err := e.BindBody(&body); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		applyCatalogFields(record, cfg, body)
		if msg := missingRequiredRecord(cfg, record); msg != "" {
			return respondError(e, http.StatusBadRequest, msg)
		}
		if err := app.Save(record); err != nil {
			log.Printf("catalog_update: could not save %s record %s: %v\n", cfg.collection, record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save record")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleCatalogDelete deletes a catalog record. Estimates keep their
// denormalized copies of names and codes, so removing a catalog entry never
// touches existing documents.
func HandleCatalogDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg, ok := catalogFromPath(e)
		if !ok {
			return respondError(e, http.StatusNotFound, "Unknown catalog")
		}

		record, err := app.FindRecordById(cfg.collection, e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Record not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("catalog_delete: could not delete %s record %s: %v\n", cfg.collection, record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete record")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

func applyCatalogFields(record *core.Record, cfg catalogConfig, body map[string]any) {
	for _, f := range cfg.fields {
		if value, ok := body[f]; ok {
			if s, isString := value.(string); isString {
				value = strings.TrimSpace(s)
			}
			record.Set(f, value)
		}
	}
}

func missingRequired(cfg catalogConfig, body map[string]any) string {
	for _, f := range cfg.required {
		s, _ := body[f].(string)
		if strings.TrimSpace(s) == "" {
			return f + " is required"
		}
	}
	return ""
}

func missingRequiredRecord(cfg catalogConfig, record *core.Record) string {
	for _, f := range cfg.required {
		if strings.TrimSpace(record.GetString(f)) == "" {
			return f + " is required"
		}
	}
	return ""
}
