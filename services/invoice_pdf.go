package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateInvoicePDF creates a proforma or tax invoice PDF using maroto/v2.
func GenerateInvoicePDF(data *InvoiceExportData) ([]byte, error) {
	m := newA4Document()

	addCompanyHeader(m, data.Company, data.Title, fmt.Sprintf("Invoice #: %s", data.InvoiceNumber))
	addInvoiceClientBlock(m, data)
	addInvoiceLineItemsTable(m, data)
	addInvoiceTotals(m, data)
	addAmountInWords(m, data.Totals.AmountInWords)
	addInvoiceNotes(m, data)
	addSignatures(m, "Receiver's Signature", "For "+data.Company.Name)

	return generatePDF(m, "invoice")
}

// addInvoiceClientBlock adds the billed party on the left and invoice
// metadata on the right.
func addInvoiceClientBlock(m core.Maroto, data *InvoiceExportData) {
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: greyColor}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	rightLabelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: greyColor}
	rightValueStyle := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("BILL TO", labelStyle)),
			col.New(6).Add(text.New("INVOICE DETAILS", rightLabelStyle)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(data.ClientName, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left})),
			col.New(3).Add(text.New("Invoice Date:", rightLabelStyle)),
			col.New(3).Add(text.New(data.InvoiceDate, rightValueStyle)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(data.ClientAddress, valueStyle)),
			col.New(3).Add(text.New("Project:", rightLabelStyle)),
			col.New(3).Add(text.New(data.ProjectName, rightValueStyle)),
		),
	)

	if data.ClientGSTIN != "" || data.ProformaRef != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(fmtField("GSTIN", data.ClientGSTIN), valueStyle)),
				col.New(3).Add(text.New(fmtField("Against", data.ProformaRef), rightLabelStyle)),
				col.New(3),
			),
		)
	}

	if data.SiteAddress != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(fmtField("Site", data.SiteAddress), valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addInvoiceLineItemsTable adds the line items table with header and body rows.
func addInvoiceLineItemsTable(m core.Maroto, data *InvoiceExportData) {
	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteColor}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: darkColor}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("SI No", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("HSN/SAC", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UoM", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)

	bodyText := props.Text{Size: 7, Align: align.Center}
	bodyTextLeft := props.Text{Size: 7, Align: align.Left}
	bodyTextRight := props.Text{Size: 7, Align: align.Right}

	for i, item := range data.LineItems {
		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.SINo), bodyText)),
			col.New(5).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(item.HSNCode, bodyText)),
			col.New(1).Add(text.New(FormatQty(item.Qty), bodyTextRight)),
			col.New(1).Add(text.New(item.UoM, bodyText)),
			col.New(1).Add(text.New(FormatRupees(item.Rate), bodyTextRight)),
			col.New(2).Add(text.New(FormatRupees(item.Amount), bodyTextRight)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: altBg})
			}
		}
		m.AddRows(row.New(7).Add(cols...))
	}

	// An inclusive-basis invoice may bill a lump sum without lines.
	if len(data.LineItems) == 0 {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New("Lump sum as per work order", bodyTextLeft)),
			),
		)
	}

	m.AddRows(row.New(2))
}

// addInvoiceTotals adds taxable value, CGST, SGST, round off and grand total.
func addInvoiceTotals(m core.Maroto, data *InvoiceExportData) {
	t := data.Totals
	addSummaryRow(m, "Taxable Value", FormatRupees(t.TaxableValue))
	addSummaryRow(m, "CGST "+FormatPercent(t.CGSTRate), FormatRupees(t.CGSTAmount))
	addSummaryRow(m, "SGST "+FormatPercent(t.SGSTRate), FormatRupees(t.SGSTAmount))
	addSummaryRow(m, "Round Off", FormatRupees(t.RoundOff))
	addGrandRow(m, "Grand Total", FormatRupees(t.GrandTotal))
	m.AddRows(row.New(3))
}

// addInvoiceNotes adds the notes section if non-empty.
func addInvoiceNotes(m core.Maroto, data *InvoiceExportData) {
	if data.Notes == "" {
		return
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("NOTES", props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: greyColor})),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(data.Notes, props.Text{Size: 8, Align: align.Left})),
		),
	)
	m.AddRows(row.New(3))
}
