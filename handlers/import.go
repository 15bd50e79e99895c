package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleMaterialImport imports a materials price list from an uploaded
// .xlsx or .csv file. Rows that cannot be imported are reported back with
// their row numbers; the rest are created in one pass.
func HandleMaterialImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(32 << 20); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid multipart form")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, http.StatusBadRequest, "A file field is required")
		}
		defer file.Close()

		result, err := services.ImportMaterials(app, file, header.Filename)
		if err != nil {
			log.Printf("material_import: %v\n", err)
			return respondError(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, result)
	}
}
