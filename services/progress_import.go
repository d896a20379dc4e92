package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProgressUpdate is a validated import row.
type ProgressUpdate struct {
	Row            int     `json:"row"`
	FlatWorkItemID string  `json:"flat_work_item_id"`
	FlatNumber     string  `json:"flat_number"`
	WorkItemName   string  `json:"work_item_name"`
	PreviousQty    float64 `json:"previous_qty"`
	CompletedQty   float64 `json:"completed_qty"`
	Note           string  `json:"note,omitempty"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Updates   []ProgressUpdate  `json:"updates"`
	FileName  string            `json:"file_name"`
}

// Import column headers, matched case-insensitively.
const (
	colWing         = "wing"
	colFlat         = "flat"
	colWorkItem     = "work item"
	colCompletedQty = "completed qty"
	colNote         = "note"
)

var requiredImportColumns = []string{colWing, colFlat, colWorkItem, colCompletedQty}

// ReadSheetRows reads a header row and data rows from a .csv, .xlsx or .xls
// upload.
func ReadSheetRows(r io.Reader, filename string) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(bytes.NewReader(data))
	case ".xlsx":
		rows, err = parseExcel(bytes.NewReader(data))
	case ".xls":
		rows, err = parseXLS(data)
	default:
		return nil, nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, nil, err
	}

	rows = dropBlankRows(rows)
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// parseCSV reads all CSV records.
func parseCSV(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// parseExcel reads all rows from the first sheet of an xlsx file.
func parseExcel(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

// parseXLS reads a legacy BIFF workbook.
func parseXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open XLS file: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	return workbook.ReadAllCells(100000), nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, r := range rows {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ProgressIndex resolves (wing, flat, work item) to a project's flat work item.
type ProgressIndex map[string]FlatWorkProgress

func indexKey(wing, flat, item string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(wing) + "|" + norm(flat) + "|" + norm(item)
}

// NewProgressIndex indexes loaded progress rows for import lookups.
func NewProgressIndex(rows []FlatWorkProgress) ProgressIndex {
	idx := make(ProgressIndex, len(rows))
	for _, r := range rows {
		idx[indexKey(r.Wing, r.FlatNumber, r.WorkItemName)] = r
	}
	return idx
}

// ValidateProgressRows maps columns by header and checks each row against the
// index. Row numbers are 1-indexed and count the header row.
func ValidateProgressRows(headers []string, rows [][]string, index ProgressIndex) *ValidationResult {
	result := &ValidationResult{TotalRows: len(rows)}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), " *")
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, c := range requiredImportColumns {
		if _, ok := cols[c]; !ok {
			result.Errors = append(result.Errors, ValidationError{
				Row:     1,
				Field:   c,
				Message: fmt.Sprintf("missing column %q", c),
			})
		}
	}
	if len(result.Errors) > 0 {
		result.ErrorRows = result.TotalRows
		return result
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(unsanitizeExcelCell(strings.TrimSpace(row[i])))
	}

	errorRows := make(map[int]bool)
	for i, row := range rows {
		rowNum := i + 2
		fail := func(field, msg string) {
			result.Errors = append(result.Errors, ValidationError{Row: rowNum, Field: field, Message: msg})
			errorRows[rowNum] = true
		}

		wing, flat, item := cell(row, colWing), cell(row, colFlat), cell(row, colWorkItem)
		if flat == "" || item == "" {
			fail("Flat", "Flat and Work Item are required")
			continue
		}
		target, ok := index[indexKey(wing, flat, item)]
		if !ok {
			fail("Flat", fmt.Sprintf("no work item %q for flat %s in wing %s", item, flat, wing))
			continue
		}

		qty, err := ParseAmount(cell(row, colCompletedQty))
		if err != nil {
			fail("Completed Qty", "Completed Qty must be a non-negative number")
			continue
		}
		completed := qty.InexactFloat64()
		if target.TotalQty > 0 && completed > target.TotalQty {
			fail("Completed Qty", fmt.Sprintf("Completed Qty %s exceeds total %s", FormatQty(qty), FormatQty(Money(target.TotalQty))))
			continue
		}

		result.Updates = append(result.Updates, ProgressUpdate{
			Row:            rowNum,
			FlatWorkItemID: target.FlatWorkItemID,
			FlatNumber:     target.FlatNumber,
			WorkItemName:   target.WorkItemName,
			PreviousQty:    target.CompletedQty,
			CompletedQty:   completed,
			Note:           cell(row, colNote),
		})
	}

	result.ErrorRows = len(errorRows)
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result
}

// ValidateProgressFile reads an upload and validates it against the
// project's flat work items.
func ValidateProgressFile(app *pocketbase.PocketBase, projectID string, file io.Reader, fileName string) (*ValidationResult, error) {
	headers, rows, err := ReadSheetRows(file, fileName)
	if err != nil {
		return nil, err
	}
	progress, err := LoadFlatWorkProgress(app, projectID)
	if err != nil {
		return nil, err
	}
	result := ValidateProgressRows(headers, rows, NewProgressIndex(progress))
	result.FileName = fileName
	return result, nil
}

// ApplyProgressImport writes the valid updates: completed_qty is set and a
// progress_logs entry records the change. Rows whose quantity is unchanged
// are skipped. Returns the number of rows written.
func ApplyProgressImport(app *pocketbase.PocketBase, result *ValidationResult, logDate time.Time) (int, error) {
	if len(result.Updates) == 0 {
		return 0, nil
	}
	logsCol, err := app.FindCollectionByNameOrId("progress_logs")
	if err != nil {
		return 0, fmt.Errorf("import: could not find progress_logs collection: %w", err)
	}

	applied := 0
	err = app.RunInTransaction(func(txApp core.App) error {
		for _, u := range result.Updates {
			fwi, err := txApp.FindRecordById("flat_work_items", u.FlatWorkItemID)
			if err != nil {
				return fmt.Errorf("row %d: %w", u.Row, err)
			}
			note := u.Note
			if note == "" {
				note = "Imported from " + result.FileName
			}
			changed, err := setProgress(txApp, logsCol, fwi, u.CompletedQty, note, logDate)
			if err != nil {
				return fmt.Errorf("row %d: %w", u.Row, err)
			}
			if changed {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return applied, nil
}
