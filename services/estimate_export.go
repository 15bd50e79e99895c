package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// EstimateExport is everything needed to render an estimate document.
type EstimateExport struct {
	Number       string
	Name         string
	ProjectTitle string
	Date         time.Time
	Items        []LineItem
	TotalCost    float64
	UnitNames    map[string]string
}

// BuildEstimateExport fetches an estimate and resolves display lookups.
// Broken unit/project references resolve to empty strings, never errors.
func BuildEstimateExport(app core.App, estimateID string) (EstimateExport, error) {
	record, err := app.FindRecordById("estimates", estimateID)
	if err != nil {
		return EstimateExport{}, fmt.Errorf("estimate not found: %w", err)
	}

	items, err := DecodeItems(record)
	if err != nil {
		return EstimateExport{}, err
	}

	data := EstimateExport{
		Number:    record.GetString("number"),
		Name:      record.GetString("name"),
		Date:      record.GetDateTime("date").Time(),
		Items:     items,
		TotalCost: record.GetFloat("total_cost"),
		UnitNames: map[string]string{},
	}

	if projectID := record.GetString("project"); projectID != "" {
		if project, err := app.FindRecordById("projects", projectID); err == nil {
			data.ProjectTitle = project.GetString("title")
		}
	}

	if units, err := app.FindRecordsByFilter("units", "id != ''", "", 0, 0, nil); err == nil {
		for _, unit := range units {
			data.UnitNames[unit.Id] = unit.GetString("name")
		}
	}

	return data, nil
}

// GenerateEstimateExcel renders an estimate to an xlsx workbook.
func GenerateEstimateExcel(data EstimateExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Смета " + data.Number
	if len([]rune(sheetName)) > 31 {
		sheetName = string([]rune(sheetName)[:31])
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{6, 46, 12, 10, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	workStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create work style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 2},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	rowNum := 1
	setRow := func(values []any) {
		for i, v := range values {
			if v == nil {
				continue
			}
			cell := fmt.Sprintf("%s%d", columns[i], rowNum)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	// Document header.
	setRow([]any{fmt.Sprintf("Смета № %s", data.Number)})
	_ = f.MergeCell(sheetName, "A1", "F1")
	_ = f.SetCellStyle(sheetName, "A1", "F1", titleStyle)
	rowNum++
	setRow([]any{data.Name})
	rowNum++
	if data.ProjectTitle != "" {
		setRow([]any{"Объект: " + data.ProjectTitle})
		rowNum++
	}
	setRow([]any{"Дата: " + data.Date.Format("02.01.2006")})
	rowNum += 2

	// Table header.
	setRow([]any{"№", "Наименование", "Ед. изм.", "Кол-во", "Цена", "Сумма"})
	_ = f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", rowNum), fmt.Sprintf("F%d", rowNum), headerStyle)
	rowNum++

	for _, item := range data.Items {
		name := item.Name
		if item.Kind == LineKindMaterial {
			name = item.MaterialName
		}

		var price, total any
		if item.Kind == LineKindSimple {
			if item.Price != nil {
				price = *item.Price
			}
		}
		if item.TotalCost != nil {
			total = *item.TotalCost
		}

		setRow([]any{item.Number, name, data.UnitNames[item.UnitID], itemQuantity(item), price, total})
		rowNum++

		for _, w := range item.Works {
			var wPrice, wTotal any
			if w.PricePerUnit != nil {
				wPrice = *w.PricePerUnit
			}
			if w.TotalCost != nil {
				wTotal = *w.TotalCost
			}
			setRow([]any{nil, "— " + w.WorkName, data.UnitNames[w.UnitID], w.Quantity, wPrice, wTotal})
			_ = f.SetCellStyle(sheetName,
				fmt.Sprintf("B%d", rowNum), fmt.Sprintf("F%d", rowNum), workStyle)
			rowNum++
		}

		if item.Notes != "" {
			setRow([]any{nil, "Примечание: " + item.Notes})
			rowNum++
		}
	}

	// Totals.
	setRow([]any{nil, "Итого:", nil, nil, nil, data.TotalCost})
	_ = f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", rowNum), fmt.Sprintf("F%d", rowNum), totalStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// itemQuantity returns the displayable quantity of a line. Material lines
// carry quantities on their work entries, not on themselves.
func itemQuantity(item LineItem) any {
	if item.Kind == LineKindMaterial {
		return nil
	}
	return item.Quantity
}
