package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// CompanyInfo is the issuing contractor printed on every document.
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
	GSTIN   string
}

// InvoiceExportData holds all data needed to render or print an invoice.
type InvoiceExportData struct {
	Company CompanyInfo

	// Header
	ID            string
	Type          InvoiceType
	Title         string
	InvoiceNumber string
	InvoiceDate   string
	ProformaRef   string
	ProjectName   string
	SiteAddress   string

	// Client
	ClientName    string
	ClientAddress string
	ClientGSTIN   string

	Basis     AmountBasis
	LineItems []InvoiceExportLineItem
	Totals    InvoiceTotals
	Notes     string
}

// InvoiceExportLineItem holds a single line item for export.
type InvoiceExportLineItem struct {
	SINo        int
	Description string
	HSNCode     string
	Qty         decimal.Decimal
	UoM         string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceInputFromRecords converts an invoice and its line item records into
// an InvoiceInput.
func InvoiceInputFromRecords(inv *core.Record, items []*core.Record) InvoiceInput {
	in := InvoiceInput{
		Type:           InvoiceType(inv.GetString("invoice_type")),
		Basis:          AmountBasis(inv.GetString("amount_basis")),
		InclusiveTotal: Money(inv.GetFloat("inclusive_total")),
		CGSTRate:       Money(inv.GetFloat("cgst_rate")),
		SGSTRate:       Money(inv.GetFloat("sgst_rate")),
	}
	for _, item := range items {
		in.Lines = append(in.Lines, InvoiceLine{
			Description: item.GetString("description"),
			HSNCode:     item.GetString("hsn_code"),
			UoM:         item.GetString("uom"),
			Qty:         Money(item.GetFloat("qty")),
			Rate:        Money(item.GetFloat("rate")),
		})
	}
	return in
}

// FindInvoiceLineItems returns an invoice's lines in print order.
func FindInvoiceLineItems(app *pocketbase.PocketBase, invoiceID string) ([]*core.Record, error) {
	return app.FindRecordsByFilter(
		"invoice_line_items",
		"invoice = {:invoiceId}",
		"sort_order",
		0,
		0,
		map[string]any{"invoiceId": invoiceID},
	)
}

// BuildInvoiceExportData assembles all data needed for the invoice preview
// and PDF from PocketBase records.
func BuildInvoiceExportData(app *pocketbase.PocketBase, company CompanyInfo, invoiceID string) (*InvoiceExportData, error) {
	inv, err := app.FindRecordById("invoices", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	var projectName, siteAddress string
	if p, err := app.FindRecordById("projects", inv.GetString("project")); err == nil {
		projectName = p.GetString("name")
		siteAddress = p.GetString("site_address")
	} else {
		log.Printf("invoice_export: could not find project for invoice %s: %v", invoiceID, err)
	}

	items, err := FindInvoiceLineItems(app, invoiceID)
	if err != nil {
		log.Printf("invoice_export: could not fetch line items for invoice %s: %v", invoiceID, err)
		items = nil
	}

	in := InvoiceInputFromRecords(inv, items)
	totals, err := CalcInvoiceTotals(in)
	if err != nil {
		return nil, fmt.Errorf("invoice %s totals: %w", invoiceID, err)
	}

	lines := make([]InvoiceExportLineItem, 0, len(in.Lines))
	for i, l := range in.Lines {
		lines = append(lines, InvoiceExportLineItem{
			SINo:        i + 1,
			Description: l.Description,
			HSNCode:     l.HSNCode,
			Qty:         l.Qty,
			UoM:         l.UoM,
			Rate:        l.Rate,
			Amount:      RoundPaise(l.Amount()),
		})
	}

	basis := in.Basis
	if basis == "" {
		basis = DefaultBasis(in.Type)
	}

	return &InvoiceExportData{
		Company:       company,
		ID:            inv.Id,
		Type:          in.Type,
		Title:         in.Type.Title(),
		InvoiceNumber: inv.GetString("invoice_number"),
		InvoiceDate:   inv.GetString("invoice_date"),
		ProformaRef:   inv.GetString("proforma_ref"),
		ProjectName:   projectName,
		SiteAddress:   siteAddress,
		ClientName:    inv.GetString("client_name"),
		ClientAddress: inv.GetString("client_address"),
		ClientGSTIN:   inv.GetString("client_gstin"),
		Basis:         basis,
		LineItems:     lines,
		Totals:        totals,
		Notes:         inv.GetString("notes"),
	}, nil
}

// InvoiceSummary counts a project's invoices and sums their grand totals by
// type.
type InvoiceSummary struct {
	Count         int             `json:"count"`
	Proforma      int             `json:"proforma"`
	Tax           int             `json:"tax"`
	ProformaTotal decimal.Decimal `json:"proforma_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
}

// SummarizeInvoices totals every invoice of a project. Invoices whose totals
// cannot be computed are logged and skipped.
func SummarizeInvoices(app *pocketbase.PocketBase, projectID string) (InvoiceSummary, error) {
	s := InvoiceSummary{ProformaTotal: decimal.Zero, TaxTotal: decimal.Zero}

	invoices, err := app.FindRecordsByFilter(
		"invoices",
		"project = {:projectId}",
		"",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return s, fmt.Errorf("invoice summary: %w", err)
	}

	for _, inv := range invoices {
		items, err := FindInvoiceLineItems(app, inv.Id)
		if err != nil {
			log.Printf("invoice_summary: could not fetch line items for invoice %s: %v", inv.Id, err)
			continue
		}
		totals, err := CalcInvoiceTotals(InvoiceInputFromRecords(inv, items))
		if err != nil {
			log.Printf("invoice_summary: skipping invoice %s: %v", inv.Id, err)
			continue
		}
		s.Count++
		if InvoiceType(inv.GetString("invoice_type")) == InvoiceTypeTax {
			s.Tax++
			s.TaxTotal = s.TaxTotal.Add(totals.GrandTotal)
		} else {
			s.Proforma++
			s.ProformaTotal = s.ProformaTotal.Add(totals.GrandTotal)
		}
	}
	return s, nil
}
