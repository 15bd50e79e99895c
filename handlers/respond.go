// Package handlers wires the HTTP surface: the public marketing pages and
// the JSON admin API consumed by the panel frontend.
package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// respondError writes a JSON error payload. Every failure the admin panel
// can see goes through here so the frontend has one shape to handle.
func respondError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]any{"error": message})
}

// respondValidation maps a validation error to a 400 with field details.
// ozzo-validation errors marshal to a {field: message} object on their own.
func respondValidation(e *core.RequestEvent, err error) error {
	return e.JSON(http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": err,
	})
}

// respondRecord exports a single record as JSON.
func respondRecord(e *core.RequestEvent, statusCode int, record *core.Record) error {
	return e.JSON(statusCode, record.PublicExport())
}

// respondRecords exports a list of records as JSON.
func respondRecords(e *core.RequestEvent, records []*core.Record) error {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, record.PublicExport())
	}
	return e.JSON(http.StatusOK, out)
}
