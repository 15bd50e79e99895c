package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleCalculatorEstimate prices a system for the public cost calculator.
func HandleCalculatorEstimate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			SystemCode string                   `json:"systemCode"`
			Input      services.CalculatorInput `json:"input"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.Input.Rooms < 0 || req.Input.RoomArea < 0 || req.Input.CorridorArea < 0 {
			return respondError(e, http.StatusBadRequest, "Values cannot be negative")
		}

		settings, err := services.LoadCalculatorSettings(app, req.SystemCode)
		if err != nil {
			return respondError(e, http.StatusNotFound, "Unknown system code")
		}

		cost := services.SystemCost(settings, req.Input)
		return e.JSON(http.StatusOK, map[string]any{
			"systemCode":    settings.SystemCode,
			"systemName":    settings.SystemName,
			"cost":          cost,
			"costFormatted": services.FormatRUB(cost),
		})
	}
}

// HandleCalculatorSettingsList returns the stored pricing coefficients.
func HandleCalculatorSettingsList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("calculator_settings", "id != ''", "system_code", 0, 0, nil)
		if err != nil {
			log.Printf("calculator_settings: could not query settings: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load settings")
		}
		return respondRecords(e, records)
	}
}

// HandleCalculatorSettingsUpdate upserts pricing coefficients for a system.
func HandleCalculatorSettingsUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			SystemCode           string  `json:"systemCode"`
			SystemName           string  `json:"systemName"`
			PricePerRoom         float64 `json:"pricePerRoom"`
			PricePerRoomArea     float64 `json:"pricePerRoomArea"`
			PricePerCorridorArea float64 `json:"pricePerCorridorArea"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.SystemCode == "" || req.SystemName == "" {
			return respondError(e, http.StatusBadRequest, "System code and name are required")
		}

		existing, _ := app.FindRecordsByFilter("calculator_settings",
			"system_code = {:code}", "", 1, 0, map[string]any{"code": req.SystemCode})

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
		} else {
			col, err := app.FindCollectionByNameOrId("calculator_settings")
			if err != nil {
				log.Printf("calculator_settings: could not find collection: %v\n", err)
				return respondError(e, http.StatusInternalServerError, "Could not save settings")
			}
			record = core.NewRecord(col)
			record.Set("system_code", req.SystemCode)
		}

		record.Set("system_name", req.SystemName)
		record.Set("price_per_room", req.PricePerRoom)
		record.Set("price_per_room_area", req.PricePerRoomArea)
		record.Set("price_per_corridor_area", req.PricePerCorridorArea)

		if err := app.Save(record); err != nil {
			log.Printf("calculator_settings: could not save %s: %v\n", req.SystemCode, err)
			return respondError(e, http.StatusBadRequest, "Could not save settings")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}
