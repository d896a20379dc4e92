package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelStyles are the shared cell styles of a workbook.
type excelStyles struct {
	title, header, body, bold, percent int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	// Title style: bold, 16pt.
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	if s.body, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create body style: %w", err)
	}

	if s.bold, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create bold style: %w", err)
	}

	// 0.00 with a literal percent sign; values are already 0-100.
	numFmt := `0.00"%"`
	if s.percent, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	}); err != nil {
		return s, fmt.Errorf("create percent style: %w", err)
	}
	return s, nil
}

// writeTable writes a header row and body rows starting at startRow and
// returns the next free row.
func writeTable(f *excelize.File, sheet string, startRow int, headers []string, rows [][]any, headerStyle, bodyStyle int) (int, error) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, startRow)
		f.SetCellValue(sheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, startRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), startRow)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return 0, fmt.Errorf("style header: %w", err)
	}

	r := startRow + 1
	for _, row := range rows {
		for i, v := range row {
			if s, ok := v.(string); ok {
				v = sanitizeExcelCell(s)
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, r)
			f.SetCellValue(sheet, cell, v)
		}
		first, _ := excelize.CoordinatesToCellName(1, r)
		last, _ := excelize.CoordinatesToCellName(len(headers), r)
		f.SetCellStyle(sheet, first, last, bodyStyle)
		r++
	}
	return r, nil
}

func writeWorkbook(f *excelize.File, what string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", what, err)
	}
	return buf.Bytes(), nil
}

// ProgressFlatsSheet is the sheet whose layout matches the progress import.
const ProgressFlatsSheet = "Flats"

// GenerateProgressExcel writes a progress report workbook with a per-flat
// sheet, a summary sheet and a work item sheet. The per-flat sheet comes
// first and uses the import column headers so it can be edited and uploaded
// back.
func GenerateProgressExcel(projectName string, report *ProgressReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	// The import reads the first sheet, so Flats goes first.
	if err := f.SetSheetName(f.GetSheetName(0), ProgressFlatsSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// ── Summary ─────────────────────────────────────────────────────────
	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetColWidth(summary, "A", "A", 28)
	f.SetColWidth(summary, "B", "G", 14)
	f.MergeCell(summary, "A1", "G1")
	f.SetCellValue(summary, "A1", sanitizeExcelCell(projectName+" — Progress"))
	f.SetCellStyle(summary, "A1", "G1", styles.title)

	summaryRows := [][]any{summaryRow(report.Project)}
	for _, w := range report.Wings {
		summaryRows = append(summaryRows, summaryRow(w))
	}
	for _, fl := range report.Floors {
		summaryRows = append(summaryRows, summaryRow(fl))
	}
	end, err := writeTable(f, summary, 3,
		[]string{"Scope", "Flats Started", "Flats", "Coverage %", "Checks Done", "Checks", "Checklist %"},
		summaryRows, styles.header, styles.body)
	if err != nil {
		return nil, err
	}
	f.SetCellStyle(summary, "A4", "G4", styles.bold)
	f.SetCellStyle(summary, "D4", fmt.Sprintf("D%d", end-1), styles.percent)
	f.SetCellStyle(summary, "G4", fmt.Sprintf("G%d", end-1), styles.percent)

	// ── Work items ──────────────────────────────────────────────────────
	items := "Work Items"
	if _, err := f.NewSheet(items); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetColWidth(items, "A", "A", 28)
	f.SetColWidth(items, "B", "F", 14)
	var itemRows [][]any
	for _, w := range report.WorkItems {
		itemRows = append(itemRows, []any{
			w.Label, w.CompletedQty, w.TotalQty, w.QuantityPercent,
			w.FlatCoverage.Percent, w.ChecklistProgress.Percent,
		})
	}
	end, err = writeTable(f, items, 1,
		[]string{"Work Item", "Completed Qty", "Total Qty", "Qty %", "Coverage %", "Checklist %"},
		itemRows, styles.header, styles.body)
	if err != nil {
		return nil, err
	}
	if end > 2 {
		f.SetCellStyle(items, "D2", fmt.Sprintf("F%d", end-1), styles.percent)
	}

	// ── Flats (import layout) ───────────────────────────────────────────
	f.SetColWidth(ProgressFlatsSheet, "A", "B", 10)
	f.SetColWidth(ProgressFlatsSheet, "C", "C", 28)
	f.SetColWidth(ProgressFlatsSheet, "D", "H", 14)
	var flatRows [][]any
	for _, fl := range report.Flats {
		for _, it := range fl.Items {
			flatRows = append(flatRows, []any{
				fl.Wing, fl.FlatNumber, it.WorkItemName, it.CompletedQty, it.TotalQty,
				it.Percent, it.ChecksDone, it.ChecksTotal,
			})
		}
	}
	end, err = writeTable(f, ProgressFlatsSheet, 1,
		[]string{"Wing", "Flat", "Work Item", "Completed Qty", "Total Qty", "Percent", "Checks Done", "Checks"},
		flatRows, styles.header, styles.body)
	if err != nil {
		return nil, err
	}
	if end > 2 {
		f.SetCellStyle(ProgressFlatsSheet, "F2", fmt.Sprintf("F%d", end-1), styles.percent)
	}

	return writeWorkbook(f, "progress excel")
}

func summaryRow(s ProgressSummary) []any {
	return []any{
		s.Label,
		s.FlatCoverage.Done, s.FlatCoverage.Total, s.FlatCoverage.Percent,
		s.ChecklistProgress.Done, s.ChecklistProgress.Total, s.ChecklistProgress.Percent,
	}
}

// GeneratePayrollExcel writes a month's payroll with a totals row.
func GeneratePayrollExcel(projectName string, report *PayrollReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	sheet := "Payroll " + report.Month
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "J", 13)

	f.MergeCell(sheet, "A1", "J1")
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(projectName+" — Payroll "+report.Month))
	f.SetCellStyle(sheet, "A1", "J1", styles.title)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s", report.From, report.To))

	var rows [][]any
	for _, r := range report.Rows {
		s := r.Settlement
		rows = append(rows, []any{
			r.Name, r.Skill,
			s.DaysWorked.InexactFloat64(), r.DailyWage.InexactFloat64(), s.GrossWages.InexactFloat64(),
			s.OvertimeHours.InexactFloat64(), s.OvertimePay.InexactFloat64(),
			s.KharciTotal.InexactFloat64(), s.NetPayable.InexactFloat64(), s.AdvanceBalance.InexactFloat64(),
		})
	}
	end, err := writeTable(f, sheet, 4,
		[]string{"Worker", "Skill", "Days", "Daily Wage", "Wages", "OT Hours", "OT Pay", "Kharci", "Net Payable", "Advance"},
		rows, styles.header, styles.body)
	if err != nil {
		return nil, err
	}

	t := report.Totals
	totalRow := fmt.Sprintf("%d", end)
	f.SetCellValue(sheet, "A"+totalRow, fmt.Sprintf("Total (%d workers)", t.Workers))
	f.SetCellValue(sheet, "C"+totalRow, t.DaysWorked.InexactFloat64())
	f.SetCellValue(sheet, "E"+totalRow, t.GrossWages.InexactFloat64())
	f.SetCellValue(sheet, "G"+totalRow, t.OvertimePay.InexactFloat64())
	f.SetCellValue(sheet, "H"+totalRow, t.KharciTotal.InexactFloat64())
	f.SetCellValue(sheet, "I"+totalRow, t.NetPayable.InexactFloat64())
	f.SetCellValue(sheet, "J"+totalRow, t.AdvanceBalance.InexactFloat64())
	f.SetCellStyle(sheet, "A"+totalRow, "J"+totalRow, styles.bold)

	return writeWorkbook(f, "payroll excel")
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(e.Field))
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	return writeWorkbook(f, "error report")
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// unsanitizeExcelCell undoes sanitizeExcelCell for values read back from an
// exported sheet.
func unsanitizeExcelCell(s string) string {
	if len(s) < 2 || s[0] != '\'' {
		return s
	}
	switch s[1] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return s[1:]
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
