package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// SystemCodes the public calculator knows about.
var SystemCodes = []string{"SAPS", "SOUE", "APS", "VODOPROVOD", "KANALIZACIYA"}

// CalculatorSettings holds per-system pricing coefficients.
type CalculatorSettings struct {
	SystemCode           string  `json:"systemCode"`
	SystemName           string  `json:"systemName"`
	PricePerRoom         float64 `json:"pricePerRoom"`
	PricePerRoomArea     float64 `json:"pricePerRoomArea"`
	PricePerCorridorArea float64 `json:"pricePerCorridorArea"`
}

// CalculatorInput describes the building the visitor wants priced.
type CalculatorInput struct {
	Rooms        int     `json:"rooms"`
	RoomArea     float64 `json:"roomArea"`
	CorridorArea float64 `json:"corridorArea"`
}

// SystemCost is the flat pricing model behind the public calculator:
// a per-room charge plus per-square-meter rates for rooms and corridors.
func SystemCost(settings CalculatorSettings, input CalculatorInput) float64 {
	return float64(input.Rooms)*settings.PricePerRoom +
		input.RoomArea*settings.PricePerRoomArea +
		input.CorridorArea*settings.PricePerCorridorArea
}

// LoadCalculatorSettings reads the stored coefficients for a system code.
func LoadCalculatorSettings(app core.App, systemCode string) (CalculatorSettings, error) {
	records, err := app.FindRecordsByFilter(
		"calculator_settings",
		"system_code = {:code}",
		"", 1, 0,
		map[string]any{"code": systemCode},
	)
	if err != nil {
		return CalculatorSettings{}, fmt.Errorf("load calculator settings: %w", err)
	}
	if len(records) == 0 {
		return CalculatorSettings{}, fmt.Errorf("no calculator settings for %q", systemCode)
	}

	record := records[0]
	return CalculatorSettings{
		SystemCode:           record.GetString("system_code"),
		SystemName:           record.GetString("system_name"),
		PricePerRoom:         record.GetFloat("price_per_room"),
		PricePerRoomArea:     record.GetFloat("price_per_room_area"),
		PricePerCorridorArea: record.GetFloat("price_per_corridor_area"),
	}, nil
}
