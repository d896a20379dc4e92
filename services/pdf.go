package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	darkColor  = &props.Color{Red: 33, Green: 37, Blue: 41}
	greyColor  = &props.Color{Red: 100, Green: 100, Blue: 100}
	whiteColor = &props.Color{Red: 255, Green: 255, Blue: 255}
	altBg      = &props.Color{Red: 248, Green: 249, Blue: 250}
	summaryBg  = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// newA4Document returns a portrait A4 maroto document with page numbers.
func newA4Document() core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()
	return maroto.New(cfg)
}

// addCompanyHeader prints the contractor on the left and the document title
// and number on the right.
func addCompanyHeader(m core.Maroto, company CompanyInfo, title, number string) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(company.Name, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: darkColor,
				}),
			),
		),
	)

	contact := joinNonEmpty([]string{company.Address, company.Phone, company.Email}, " | ")
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: greyColor,
				}),
			),
			col.New(6).Add(
				text.New(number, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	if company.GSTIN != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New("GSTIN: "+company.GSTIN, props.Text{Size: 8, Align: align.Left})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addSummaryRow adds a right-aligned label/value pair on a grey band.
func addSummaryRow(m core.Maroto, label, value string) {
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New(label, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})).WithStyle(summaryCell),
			col.New(3).Add(text.New(value, props.Text{Size: 8, Align: align.Right})).WithStyle(summaryCell),
		),
	)
}

// addGrandRow adds the white-on-dark total line.
func addGrandRow(m core.Maroto, label, value string) {
	grandCell := &props.Cell{BackgroundColor: darkColor}
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: whiteColor}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New(label, style)).WithStyle(grandCell),
			col.New(3).Add(text.New(value, style)).WithStyle(grandCell),
		),
	)
}

// addAmountInWords adds the amount in words row.
func addAmountInWords(m core.Maroto, words string) {
	if words == "" {
		return
	}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", words), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(3))
}

// addSignatures adds two signature lines at the bottom.
func addSignatures(m core.Maroto, left, right string) {
	m.AddRows(row.New(10))

	lineStyle := props.Text{Size: 8, Align: align.Center, Color: greyColor}
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)

	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: greyColor}
	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(left, labelStyle)),
			col.New(6).Add(text.New(right, labelStyle)),
		),
	)
}

func generatePDF(m core.Maroto, what string) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s PDF: %w", what, err)
	}
	return doc.GetBytes(), nil
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
