// Package report builds tabular PDF reports over stored quotations.
package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/sangkips/autoquote-api/pkg/document"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 138}
	colorStripe  = &props.Color{Red: 241, Green: 245, Blue: 249}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
)

const arabicFamily = "arabic"

// RegisterRow is one quotation line in the register.
type RegisterRow struct {
	Reference string
	Type      string
	IssueDate time.Time
	Customer  string
	Vehicle   string
	SalesRep  string
	Total     float64
	Status    string
}

// RegisterReport renders the quotation register, a landscape listing of
// quotations with a grand total.
type RegisterReport struct {
	fonts  document.Fonts
	format *document.Formatter
	now    func() time.Time
}

// NewRegisterReport returns a report generator. When fonts.RegularPath is
// empty the report uses core Helvetica and Arabic values are not legible.
func NewRegisterReport(fonts document.Fonts, format *document.Formatter) *RegisterReport {
	if format == nil {
		format = document.NewFormatter(false)
	}
	return &RegisterReport{fonts: fonts, format: format, now: time.Now}
}

// Generate returns the register as PDF bytes.
func (r *RegisterReport) Generate(ctx context.Context, title string, rows []RegisterRow) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(title, true).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
		})

	if r.fonts.RegularPath != "" {
		bold := r.fonts.BoldPath
		if bold == "" {
			bold = r.fonts.RegularPath
		}
		fonts, err := repository.New().
			AddUTF8Font(arabicFamily, fontstyle.Normal, r.fonts.RegularPath).
			AddUTF8Font(arabicFamily, fontstyle.Bold, bold).
			Load()
		if err != nil {
			return nil, fmt.Errorf("report: load fonts: %w", err)
		}
		builder = builder.
			WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: arabicFamily, Size: 9})
	} else {
		builder = builder.WithDefaultFont(&props.Font{Family: "helvetica", Size: 9})
	}

	m := maroto.New(builder.Build())

	m.AddRows(r.titleRow(title, len(rows)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow())

	var total float64
	for i, qr := range rows {
		total += qr.Total
		m.AddRows(r.dataRow(i, qr))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generate register: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *RegisterReport) titleRow(title string, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(document.Visual(title), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+r.format.Date(r.now()), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New("Quotations: "+strconv.Itoa(count), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 7,
			}),
		),
	)
}

func headerRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Reference", 2, align.Left),
		h("Date", 1, align.Center),
		h("Customer", 2, align.Right),
		h("Vehicle", 2, align.Right),
		h("Sales rep", 2, align.Right),
		h("Status", 1, align.Center),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (r *RegisterReport) dataRow(i int, qr RegisterRow) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	reference := qr.Reference
	if qr.Type != "" {
		reference += " (" + qr.Type + ")"
	}
	rw := row.New(7).Add(
		cell(reference, 2, align.Left),
		cell(r.format.Date(qr.IssueDate), 1, align.Center),
		cell(document.Visual(qr.Customer), 2, align.Right),
		cell(document.Visual(qr.Vehicle), 2, align.Right),
		cell(document.Visual(qr.SalesRep), 2, align.Right),
		cell(qr.Status, 1, align.Center),
		cell(r.format.Money(qr.Total), 2, align.Right),
	)
	if i%2 == 1 {
		rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return rw
}

func (r *RegisterReport) totalRow(total float64) core.Row {
	return row.New(9).Add(
		col.New(10).Add(text.New("Grand total", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(r.format.Money(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}
