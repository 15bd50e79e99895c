package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// ImportRowError is a single per-row problem found during import.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a material import. Rows are either imported or
// skipped; a row can be imported and still carry an error (e.g. an
// unparseable price imported without one).
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Imported  int              `json:"imported"`
	Skipped   int              `json:"skipped"`
	Errors    []ImportRowError `json:"errors"`
}

// Header aliases accepted for each material column. Matching is
// case-insensitive on the trimmed header cell.
var (
	codeAliases  = []string{"артикул", "код", "article", "code"}
	nameAliases  = []string{"наименование", "название", "name", "title"}
	unitAliases  = []string{"единица измерения", "ед.изм", "unit", "единица"}
	descAliases  = []string{"описание", "description", "desc"}
	priceAliases = []string{"цена", "price", "cost", "стоимость"}
)

// ImportMaterials parses an uploaded .xlsx or .csv material list and creates
// catalog records. The first row must be a header containing at least a
// code and a name column (localized aliases accepted). Rows missing either
// are skipped, duplicate codes are skipped, unparseable prices import the
// row without a price. Nothing aborts the whole import except an unreadable
// file or a header without the required columns.
func ImportMaterials(app core.App, file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	codeIdx := findColumnIndex(headers, codeAliases)
	nameIdx := findColumnIndex(headers, nameAliases)
	unitIdx := findColumnIndex(headers, unitAliases)
	descIdx := findColumnIndex(headers, descAliases)
	priceIdx := findColumnIndex(headers, priceAliases)

	if codeIdx == -1 || nameIdx == -1 {
		return nil, fmt.Errorf("header row must contain code and name columns")
	}

	collection, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection: %w", err)
	}

	existingCodes, err := existingMaterialCodes(app)
	if err != nil {
		return nil, err
	}
	unitsByName := unitLookup(app)

	result := &ImportResult{TotalRows: len(dataRows)}
	for i, row := range dataRows {
		rowNum := i + 2 // header is row 1

		code := strings.TrimSpace(cell(row, codeIdx))
		name := strings.TrimSpace(cell(row, nameIdx))

		if code == "" || name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Message: "missing required code or name",
			})
			continue
		}
		if existingCodes[strings.ToLower(code)] {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Message: fmt.Sprintf("code %q already exists", code),
			})
			continue
		}

		record := core.NewRecord(collection)
		record.Set("type", "material")
		record.Set("code", code)
		record.Set("name", name)
		if descIdx != -1 {
			record.Set("description", strings.TrimSpace(cell(row, descIdx)))
		}
		if unitIdx != -1 {
			if unitID := unitsByName[normalizeCell(cell(row, unitIdx))]; unitID != "" {
				record.Set("unit", unitID)
			}
		}
		if priceIdx != -1 {
			if rawPrice := strings.TrimSpace(cell(row, priceIdx)); rawPrice != "" {
				price, perr := parsePrice(rawPrice)
				if perr != nil {
					result.Errors = append(result.Errors, ImportRowError{
						Row:     rowNum,
						Message: fmt.Sprintf("unparseable price %q, imported without one", rawPrice),
					})
				} else {
					record.Set("price", price)
				}
			}
		}

		if err := app.Save(record); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Message: fmt.Sprintf("could not save: %v", err),
			})
			continue
		}

		existingCodes[strings.ToLower(code)] = true
		result.Imported++
	}

	return result, nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// findColumnIndex returns the first header position matching any alias.
func findColumnIndex(headers []string, aliases []string) int {
	for i, h := range headers {
		norm := normalizeCell(h)
		for _, alias := range aliases {
			if norm == alias {
				return i
			}
		}
	}
	return -1
}

func normalizeCell(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parsePrice accepts both dot and comma decimal separators and ignores
// grouping spaces.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return cast.ToFloat64E(cleaned)
}

func existingMaterialCodes(app core.App) (map[string]bool, error) {
	records, err := app.FindRecordsByFilter("materials", "id != ''", "", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	codes := make(map[string]bool, len(records))
	for _, record := range records {
		if code := record.GetString("code"); code != "" {
			codes[strings.ToLower(code)] = true
		}
	}
	return codes, nil
}

// unitLookup maps lowercased unit names, full names and codes to unit ids so
// spreadsheet cells like "шт" or "метр" resolve against the catalog.
func unitLookup(app core.App) map[string]string {
	lookup := make(map[string]string)
	records, err := app.FindRecordsByFilter("units", "id != ''", "", 0, 0, nil)
	if err != nil {
		return lookup
	}
	for _, record := range records {
		for _, field := range []string{"code", "name", "full_name"} {
			if v := normalizeCell(record.GetString(field)); v != "" {
				lookup[v] = record.Id
			}
		}
	}
	return lookup
}
