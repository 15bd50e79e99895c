package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleImageList returns stored images, optionally filtered by category
// and a name/tag substring.
func HandleImageList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		category := strings.TrimSpace(e.Request.URL.Query().Get("category"))
		q := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		filter := "id != ''"
		params := map[string]any{}
		if category != "" {
			filter = "category = {:category}"
			params["category"] = category
		}
		if q != "" {
			filter += " && (name ~ {:q} || tags ~ {:q})"
			params["q"] = q
		}

		records, err := app.FindRecordsByFilter("images", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("image_list: could not query images: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load images")
		}
		return respondRecords(e, records)
	}
}

// HandleImageUpload accepts a multipart upload, validates and normalizes
// the image and stores it. Images wider than the site ever renders are
// downscaled before they hit storage.
func HandleImageUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(12 << 20); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid multipart form")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, http.StatusBadRequest, "A file field is required")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return respondError(e, http.StatusBadRequest, "Could not read upload")
		}

		prepared, err := services.PrepareImage(data)
		if err != nil {
			return respondError(e, http.StatusBadRequest, err.Error())
		}

		category := e.Request.FormValue("category")
		if !validImageCategory(category) {
			return respondError(e, http.StatusBadRequest, "Unknown image category")
		}
		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			name = header.Filename
		}

		stored, err := filesystem.NewFileFromBytes(prepared.Data, header.Filename)
		if err != nil {
			log.Printf("image_upload: could not wrap file: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not store image")
		}

		col, err := app.FindCollectionByNameOrId("images")
		if err != nil {
			log.Printf("image_upload: could not find images collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not store image")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("file", stored)
		record.Set("category", category)
		record.Set("size", len(prepared.Data))
		record.Set("width", prepared.Width)
		record.Set("height", prepared.Height)
		if tags := e.Request.FormValue("tags"); tags != "" {
			record.Set("tags", splitTags(tags))
		}

		if err := app.Save(record); err != nil {
			log.Printf("image_upload: could not save image: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save image")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleImageDelete removes an image record along with its stored file.
func HandleImageDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("images", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Image not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("image_delete: could not delete image %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete image")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

// HandleImageStats returns library totals for the panel dashboard.
func HandleImageStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		stats, err := services.ImageStorageStats(app)
		if err != nil {
			log.Printf("image_stats: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not compute stats")
		}
		return e.JSON(http.StatusOK, stats)
	}
}

func validImageCategory(category string) bool {
	for _, c := range services.ImageCategories {
		if c == category {
			return true
		}
	}
	return false
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
