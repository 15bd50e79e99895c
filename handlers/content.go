package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleContentGetAll returns every site content section in one payload,
// the shape the public page and the panel editor both consume.
func HandleContentGetAll(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		out := map[string]json.RawMessage{}
		for _, key := range services.ContentSections {
			value, err := services.GetSection(app, key)
			if err != nil {
				log.Printf("content_get: section %s: %v\n", key, err)
				continue
			}
			if value == nil {
				value = json.RawMessage("null")
			}
			out[key] = value
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleContentGet returns one section's JSON value.
func HandleContentGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := e.Request.PathValue("key")
		if !services.IsContentSection(key) {
			return respondError(e, http.StatusNotFound, "Unknown content section")
		}

		value, err := services.GetSection(app, key)
		if err != nil {
			log.Printf("content_get: section %s: %v\n", key, err)
			return respondError(e, http.StatusInternalServerError, "Could not load section")
		}
		if value == nil {
			value = json.RawMessage("null")
		}
		return e.JSON(http.StatusOK, map[string]any{"key": key, "value": value})
	}
}

// HandleContentSet replaces a section's value with the request body.
func HandleContentSet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := e.Request.PathValue("key")
		if !services.IsContentSection(key) {
			return respondError(e, http.StatusNotFound, "Unknown content section")
		}

		body, err := io.ReadAll(io.LimitReader(e.Request.Body, 2<<20))
		if err != nil {
			return respondError(e, http.StatusBadRequest, "Could not read request body")
		}
		if !json.Valid(body) {
			return respondError(e, http.StatusBadRequest, "Body must be valid JSON")
		}

		if err := services.SetSection(app, key, body); err != nil {
			log.Printf("content_set: section %s: %v\n", key, err)
			return respondError(e, http.StatusInternalServerError, "Could not save section")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}
