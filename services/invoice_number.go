package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the Indian fiscal year (April to March) for a date.
// Jan 2026 → "25-26", May 2026 → "26-27".
func GetFiscalYear(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

func invoiceTypeCode(t InvoiceType) string {
	if t == InvoiceTypeTax {
		return "TI"
	}
	return "PI"
}

// invoicePrefix is everything before the sequence, e.g. "SL-PI-GRN-26-27-".
func invoicePrefix(prefix, projectRef string, t InvoiceType, fiscalYear string) string {
	return fmt.Sprintf("%s-%s-%s-%s-", prefix, invoiceTypeCode(t), projectRef, fiscalYear)
}

func formatInvoiceNumber(prefix, projectRef string, t InvoiceType, fiscalYear string, sequence int) string {
	return fmt.Sprintf("%s%03d", invoicePrefix(prefix, projectRef, t, fiscalYear), sequence)
}

// GenerateInvoiceNumber returns the next invoice number for a project.
// Format: {prefix}-{PI|TI}-{project_ref}-{fiscal_year}-{sequence}
//   - project_ref falls back to the project id when the project has no reference number
//   - sequence is 3-digit, per project, invoice type and fiscal year, and
//     continues after the highest number already issued
func GenerateInvoiceNumber(app *pocketbase.PocketBase, prefix, projectID string, invoiceType InvoiceType, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}
	fiscalYear := GetFiscalYear(now)
	head := invoicePrefix(prefix, projectRef, invoiceType, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"invoices",
		"project = {:projectId} && invoice_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    head + "%",
		},
	)
	if err != nil {
		return "", fmt.Errorf("invoice number: query invoices: %w", err)
	}

	highest := 0
	for _, rec := range existing {
		seq, err := strconv.Atoi(strings.TrimPrefix(rec.GetString("invoice_number"), head))
		if err == nil && seq > highest {
			highest = seq
		}
	}

	return formatInvoiceNumber(prefix, projectRef, invoiceType, fiscalYear, highest+1), nil
}
