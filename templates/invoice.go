package templates

import (
	"context"

	"github.com/a-h/templ"

	"siteledger/services"
)

// InvoiceContent is the on-screen invoice preview.
func InvoiceContent(projectID string, d *services.InvoiceExportData) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		h.rawf(`<article class="invoice" id="invoice-%s">`, d.ID)
		h.rawf(`<header><h1>%s</h1><div class="invoice-no">%s</div><div>Date: %s</div>`, d.Title, d.InvoiceNumber, d.InvoiceDate)
		if d.ProformaRef != "" {
			h.rawf(`<div>Against proforma: %s</div>`, d.ProformaRef)
		}
		h.raw(`</header>`)

		h.raw(`<div class="parties"><div class="from">`)
		h.rawf(`<strong>%s</strong><br>%s`, d.Company.Name, d.Company.Address)
		if d.Company.GSTIN != "" {
			h.rawf(`<br>GSTIN: %s`, d.Company.GSTIN)
		}
		h.raw(`</div><div class="to">`)
		h.rawf(`<strong>%s</strong><br>%s`, d.ClientName, d.ClientAddress)
		if d.ClientGSTIN != "" {
			h.rawf(`<br>GSTIN: %s`, d.ClientGSTIN)
		}
		h.rawf(`<br>Site: %s %s`, d.ProjectName, d.SiteAddress)
		h.raw(`</div></div>`)

		h.raw(`<table class="table line-items"><thead><tr><th>#</th><th>Description</th><th>HSN/SAC</th><th>Qty</th><th>UoM</th><th>Rate</th><th>Amount</th></tr></thead><tbody id="line-items">`)
		for _, l := range d.LineItems {
			h.rawf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				l.SINo, l.Description, l.HSNCode, services.FormatQty(l.Qty), l.UoM,
				services.FormatRupees(l.Rate), services.FormatRupees(l.Amount))
		}
		if len(d.LineItems) == 0 {
			h.raw(`<tr><td colspan="7" class="muted">No line items</td></tr>`)
		}
		h.raw(`</tbody></table>`)

		t := d.Totals
		h.raw(`<table class="totals"><tbody>`)
		totalRow(h, "Taxable Value", services.FormatRupees(t.TaxableValue))
		totalRow(h, "CGST @ "+services.FormatPercent(t.CGSTRate), services.FormatRupees(t.CGSTAmount))
		totalRow(h, "SGST @ "+services.FormatPercent(t.SGSTRate), services.FormatRupees(t.SGSTAmount))
		if !t.RoundOff.IsZero() {
			totalRow(h, "Round Off", services.FormatRupees(t.RoundOff))
		}
		h.rawf(`<tr class="grand"><th>Grand Total</th><td>%s</td></tr>`, services.FormatRupees(t.GrandTotal))
		h.raw(`</tbody></table>`)
		h.rawf(`<p class="in-words">%s</p>`, t.AmountInWords)

		if d.Notes != "" {
			h.rawf(`<p class="notes">%s</p>`, d.Notes)
		}
		h.rawf(`<a class="btn" href="/projects/%s/invoices/%s/export/pdf">Download PDF</a>`, projectID, d.ID)
		h.raw(`</article>`)
		return nil
	})
}

// InvoicePage is the full invoice preview document.
func InvoicePage(projectID string, d *services.InvoiceExportData) templ.Component {
	return Page(d.InvoiceNumber, InvoiceContent(projectID, d))
}

func totalRow(h *html, label, value string) {
	h.rawf(`<tr><th>%s</th><td>%s</td></tr>`, label, value)
}
