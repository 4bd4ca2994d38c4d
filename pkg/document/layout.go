package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/autoquote-api/pkg/arabicwords"
	"go.uber.org/zap"
)

// layer orders queued drawing: every fill, then every image, then text.
type layer int

const (
	layerBackground layer = iota
	layerImage
	layerForeground
)

type drawOp struct {
	layer layer
	draw  func(pdf *gofpdf.Fpdf)
}

type textStyle struct {
	size  float64
	bold  bool
	color string
}

func lineHeight(size float64) float64 {
	return size * ptToMM * 1.4
}

// layout computes positions top to bottom and queues drawing operations.
// Nothing reaches the page until flush.
type layout struct {
	pdf      *gofpdf.Fpdf
	p        *Profile
	family   string
	log      *zap.Logger
	format   *Formatter
	qr       QRGenerator
	currency string

	ops []drawOp
	y   float64
}

func (l *layout) build(ctx context.Context, d Data, number string) {
	qrTop := pageHeight - l.p.FooterHeight - l.p.SectionSpacing - l.signatureHeight()

	l.header(d, number)
	l.greeting()
	l.infoBoxes(d)
	l.specifications(d)
	l.pricingTable(d)
	l.amountInWords(d, qrTop)
	l.closingNotes(d, qrTop)
	l.signature(ctx, d, qrTop)
	l.footer(d)
}

func (l *layout) flush() {
	sort.SliceStable(l.ops, func(i, j int) bool {
		return l.ops[i].layer < l.ops[j].layer
	})
	for _, op := range l.ops {
		op.draw(l.pdf)
	}
	l.ops = nil
}

func (l *layout) add(ly layer, fn func(pdf *gofpdf.Fpdf)) {
	l.ops = append(l.ops, drawOp{layer: ly, draw: fn})
}

func (l *layout) contentWidth() float64 {
	return pageWidth - l.p.MarginLeft - l.p.MarginRight
}

func (l *layout) money(v float64) string {
	return l.format.Money(v) + " " + l.currency
}

// Primitives

func (l *layout) fill(x, y, w, h float64, color string, border bool) {
	fill := parseColor(color)
	stroke := parseColor(l.p.BorderColor)
	l.add(layerBackground, func(pdf *gofpdf.Fpdf) {
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		style := "F"
		if border {
			pdf.SetDrawColor(stroke.r, stroke.g, stroke.b)
			pdf.SetLineWidth(0.2)
			style = "FD"
		}
		pdf.Rect(x, y, w, h, style)
	})
}

func (l *layout) rule(x1, x2, y float64) {
	stroke := parseColor(l.p.BorderColor)
	l.add(layerForeground, func(pdf *gofpdf.Fpdf) {
		pdf.SetDrawColor(stroke.r, stroke.g, stroke.b)
		pdf.SetLineWidth(0.1)
		pdf.Line(x1, y, x2, y)
	})
}

func (l *layout) setFont(pdf *gofpdf.Fpdf, st textStyle) {
	style := ""
	if st.bold {
		style = "B"
	}
	pdf.SetFont(l.family, style, st.size)
}

func (l *layout) width(s string, st textStyle) float64 {
	l.setFont(l.pdf, st)
	return l.pdf.GetStringWidth(Visual(s))
}

// fit trims s from its logical end until it fits in w.
func (l *layout) fit(s string, w float64, st textStyle) string {
	if l.width(s, st) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && l.width(string(runes), st) > w {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimSpace(string(runes))
}

// text queues one line inside the box starting at (x, y) with width w.
// align is L, C or R. It returns the line height.
func (l *layout) text(x, y, w float64, s, align string, st textStyle) float64 {
	h := lineHeight(st.size)
	if strings.TrimSpace(s) == "" {
		return h
	}
	visual := Visual(l.fit(s, w-2, st))
	c := parseColor(st.color)
	l.add(layerForeground, func(pdf *gofpdf.Fpdf) {
		l.setFont(pdf, st)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.SetXY(x, y)
		pdf.CellFormat(w, h, visual, "", 0, align+"M", false, 0, "")
	})
	return h
}

// anchored draws s at a profile position: a negative x anchors the text's
// right edge that far from the right side of the page.
func (l *layout) anchored(x, y float64, s string, st textStyle) {
	w := l.width(s, st) + 2
	if limit := l.contentWidth(); w > limit {
		w = limit
	}
	align := "L"
	if x < 0 {
		align = "R"
	}
	l.text(fromEdge(x, w), y, w, s, align, st)
}

// fromEdge returns the left edge of an element w wide placed at x. A negative
// x puts the element's right edge |x| from the right of the page.
func fromEdge(x, w float64) float64 {
	if x < 0 {
		return pageWidth + x - w
	}
	return x
}

func (l *layout) wrap(s string, w float64, st textStyle) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur != "" && l.width(next, st) > w {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// paragraph wraps s right aligned and stops before maxY. It returns the
// height used.
func (l *layout) paragraph(x, y, w float64, s string, st textStyle, maxY float64) float64 {
	h := lineHeight(st.size)
	used := 0.0
	for _, line := range l.wrap(s, w-2, st) {
		if y+used+h > maxY {
			l.log.Debug("paragraph clipped", zap.Float64("y", y+used))
			break
		}
		l.text(x, y+used, w, line, "R", st)
		used += h
	}
	return used
}

// embed decodes and registers an image. An empty source is skipped
// silently; a broken one is logged and skipped.
func (l *layout) embed(name, src string) (embeddedImage, bool) {
	img, err := decodeImage(src)
	if err != nil {
		if !errors.Is(err, ErrEmptyImage) {
			l.log.Warn("skipping image", zap.String("image", name), zap.Error(err))
		}
		return img, false
	}
	return img, l.register(name, img)
}

func (l *layout) register(name string, img embeddedImage) bool {
	l.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: img.kind}, bytes.NewReader(img.data))
	if l.pdf.Err() {
		l.log.Warn("skipping image", zap.String("image", name), zap.Error(l.pdf.Error()))
		l.pdf.ClearError()
		return false
	}
	return true
}

func (l *layout) image(name string, x, y, w, h, alpha float64) {
	l.add(layerImage, func(pdf *gofpdf.Fpdf) {
		if alpha < 1 {
			pdf.SetAlpha(alpha, "Normal")
		}
		pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
		if alpha < 1 {
			pdf.SetAlpha(1, "Normal")
		}
	})
}

// Sections

func (l *layout) header(d Data, number string) {
	p := l.p
	cw := l.contentWidth()
	l.fill(0, 0, pageWidth, p.HeaderHeight, p.HeaderBackgroundColor, false)

	logo, hasLogo := l.embed("logo", d.Company.Logo)
	if hasLogo {
		l.image("logo", fromEdge(at(p.LogoPositionX), p.LogoWidth), at(p.LogoPositionY), p.LogoWidth, p.LogoHeight, 1)
	}

	title := textStyle{size: p.HeaderFontSize, bold: true, color: p.HeaderTextColor}
	y := 6.0
	y += l.text(p.MarginLeft, y, cw, d.Type.Title(), "R", title)

	company := textStyle{size: p.CompanyNameFontSize, bold: true, color: p.CompanyNameColor}
	l.text(p.MarginLeft, y, cw, orNotSpecified(d.Company.Name), "C", company)

	meta := textStyle{size: p.DateFontSize, color: p.HeaderTextColor}
	l.anchored(at(p.DatePositionX), at(p.DatePositionY), "التاريخ: "+l.format.Date(d.IssueDate), meta)
	l.anchored(at(p.QuotationNumberPositionX), at(p.QuotationNumberPositionY), d.Type.NumberLabel()+": "+number, meta)

	if hasLogo && p.WatermarkEnabled() {
		w := p.WatermarkSize
		h := w * logo.aspect()
		l.image("logo", (pageWidth-w)/2, (pageHeight-h)/2, w, h, p.WatermarkOpacity)
	}

	l.y = p.HeaderHeight + p.SectionSpacing
}

func (l *layout) greeting() {
	p := l.p
	y := l.y
	if p.GreetingPositionY > 0 {
		y = p.GreetingPositionY
	}
	st := textStyle{size: p.GreetingFontSize, color: p.TextColor}
	h := lineHeight(st.size) + 4
	l.fill(p.MarginLeft, y, l.contentWidth(), h, p.GreetingBackgroundColor, false)
	l.text(p.MarginLeft+3, y+2, l.contentWidth()-6, "تحية طيبة وبعد،", "R", st)
	l.y = y + h + p.SectionSpacing
}

func (l *layout) titleStyle() textStyle {
	return textStyle{size: l.p.SectionTitleFontSize, bold: true, color: l.p.SectionTitleColor}
}

// box draws a bordered section with a bold title and one body line per
// entry.
func (l *layout) box(x, y, w, h float64, title string, lines []string, body textStyle) {
	l.fill(x, y, w, h, l.p.BoxBackgroundColor, true)
	ts := l.titleStyle()
	ly := y + 1.5 + l.text(x+2, y+1.5, w-4, title, "R", ts) + 0.5
	for _, line := range lines {
		l.text(x+2, ly, w-4, line, "R", body)
		ly += l.p.LineHeight
	}
}

func (l *layout) boxHeight(lines int) float64 {
	return lineHeight(l.p.SectionTitleFontSize) + 2 + float64(lines)*l.p.LineHeight + 3
}

func field(lines []string, label, value string) []string {
	if value = strings.TrimSpace(value); value == "" {
		return lines
	}
	return append(lines, label+": "+value)
}

func (l *layout) infoBoxes(d Data) {
	p := l.p
	c, v := d.Customer, d.Vehicle

	customer := []string{"الاسم: " + orNotSpecified(c.Name)}
	customer = field(customer, "رقم الهوية", c.NationalID)
	customer = field(customer, "الجوال", c.Phone)
	customer = field(customer, "البريد الإلكتروني", c.Email)
	customer = field(customer, "العنوان", c.Address)

	vehicle := []string{
		"الماركة: " + orNotSpecified(v.Make),
		"الطراز: " + orNotSpecified(v.Model),
	}
	if v.Year > 0 {
		vehicle = append(vehicle, "سنة الصنع: "+l.format.digits(strconv.Itoa(v.Year)))
	}
	vehicle = field(vehicle, "رقم الهيكل", v.VIN)
	vehicle = field(vehicle, "اللون الخارجي", v.ExteriorColor)
	vehicle = field(vehicle, "اللون الداخلي", v.InteriorColor)

	rows := len(customer)
	if len(vehicle) > rows {
		rows = len(vehicle)
	}
	gap := p.SectionSpacing
	colW := (l.contentWidth() - gap) / 2
	h := l.boxHeight(rows)
	body := textStyle{size: p.ContentFontSize, color: p.TextColor}

	l.box(p.MarginLeft+colW+gap, l.y, colW, h, "بيانات العميل", customer, body)
	l.box(p.MarginLeft, l.y, colW, h, "بيانات المركبة", vehicle, body)
	l.y += h + gap
}

func (l *layout) specifications(d Data) {
	lines := SpecificationLines(d.Vehicle.Specifications, maxSpecLines)
	if len(lines) == 0 {
		return
	}
	h := l.boxHeight(len(lines))
	body := textStyle{size: l.p.SpecsFontSize, color: l.p.TextColor}
	l.box(l.p.MarginLeft, l.y, l.contentWidth(), h, "المواصفات", lines, body)
	l.y += h + l.p.SectionSpacing
}

func (l *layout) pricingTable(d Data) {
	p := l.p
	res, in := d.Result, d.Pricing

	rows := [][2]string{
		{"سعر الوحدة قبل الضريبة", l.money(res.PriceBeforeTaxPerUnit)},
		{"الكمية", l.format.Integer(in.Quantity)},
		{"المجموع قبل الضريبة", l.money(res.Subtotal)},
		{"ضريبة القيمة المضافة (" + l.format.Percent(in.VATRatePercent) + ")", l.money(res.VATAmount)},
	}
	if in.PlatePrice > 0 {
		rows = append(rows, [2]string{"رسوم اللوحات", l.money(in.PlatePrice)})
	}

	cw := l.contentWidth()
	ts := l.titleStyle()
	body := textStyle{size: p.PricingFontSize, color: p.TextColor}
	rowH := lineHeight(body.size) + 1.5
	titleH := lineHeight(ts.size) + 2
	h := titleH + float64(len(rows)+1)*rowH + 2

	x, y := p.MarginLeft, l.y
	half := cw / 2
	l.fill(x, y, cw, h, p.BoxBackgroundColor, true)
	l.text(x+2, y+1.5, cw-4, "ملخص التسعير", "R", ts)

	ry := y + titleH
	for _, row := range rows {
		l.text(x+half, ry+0.75, half-3, row[0], "R", body)
		l.text(x+3, ry+0.75, half-6, row[1], "R", body)
		ry += rowH
		l.rule(x+2, x+cw-2, ry)
	}

	total := textStyle{size: p.PricingFontSize, bold: true, color: p.HeaderTextColor}
	l.fill(x+1, ry+0.5, cw-2, rowH, p.HeaderBackgroundColor, false)
	l.text(x+half, ry+0.75, half-3, "الإجمالي", "R", total)
	l.text(x+3, ry+0.75, half-6, l.money(res.Total), "R", total)

	l.y = y + h + p.SectionSpacing
}

func (l *layout) amountInWords(d Data, maxY float64) {
	words := d.AmountInWords
	if words == "" {
		words = arabicwords.FormatAmount(d.Result.Total, l.currency)
	}
	st := textStyle{size: l.p.AmountWordsFontSize, bold: true, color: l.p.AmountWordsColor}
	text := "المبلغ: " + arabicwords.WithClosing(words)
	l.y += l.paragraph(l.p.MarginLeft, l.y, l.contentWidth(), text, st, maxY) + l.p.SectionSpacing
}

// closingNotes draws validity, notes and the terms list, clipped at maxY.
func (l *layout) closingNotes(d Data, maxY float64) {
	p := l.p
	x, w := p.MarginLeft, l.contentWidth()
	body := textStyle{size: p.ContentFontSize, color: p.TextColor}

	switch {
	case !d.ValidUntil.IsZero():
		l.y += l.paragraph(x, l.y, w, "العرض ساري حتى: "+l.format.Date(d.ValidUntil), body, maxY)
	case d.ValidityDays > 0:
		l.y += l.paragraph(x, l.y, w, fmt.Sprintf("مدة صلاحية العرض: %s يوماً", l.format.digits(strconv.Itoa(d.ValidityDays))), body, maxY)
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		l.y += l.paragraph(x, l.y, w, "ملاحظات: "+notes, body, maxY)
	}

	terms := ActiveTerms(d.Terms)
	if len(terms) == 0 {
		return
	}
	ts := l.titleStyle()
	if l.y+lineHeight(ts.size) > maxY {
		return
	}
	l.y += l.p.SectionSpacing / 2
	l.y += l.text(x, l.y, w, "الشروط والأحكام", "R", ts)
	small := textStyle{size: p.SpecsFontSize, color: p.TextColor}
	for i, t := range terms {
		line := l.format.digits(strconv.Itoa(i+1)) + "- " + strings.TrimSpace(t.Text)
		used := l.paragraph(x, l.y, w, line, small, maxY)
		if used == 0 {
			break
		}
		l.y += used
	}
}

func (l *layout) signatureHeight() float64 {
	img := l.p.QRSize
	if l.p.StampHeight > img {
		img = l.p.StampHeight
	}
	return img + 2*lineHeight(l.p.SignatureFontSize) + 6
}

func (l *layout) signature(ctx context.Context, d Data, top float64) {
	p := l.p
	boxW := 130.0
	if cw := l.contentWidth(); boxW > cw {
		boxW = cw
	}
	x := (pageWidth - boxW) / 2
	h := l.signatureHeight()
	st := textStyle{size: p.SignatureFontSize, bold: true, color: p.TextColor}

	l.fill(x, top, boxW, h, p.BoxBackgroundColor, true)
	imgTop := top + 1.5 + l.text(x, top+1.5, boxW, "التوقيع والختم", "C", st) + 1

	if l.qr != nil {
		payload := QRPayload(d, l.money(d.Result.Total))
		if raw, err := l.qr.Generate(ctx, payload); err != nil {
			l.log.Warn("skipping QR code", zap.Error(err))
		} else if img, err := inspectImage(raw); err != nil {
			l.log.Warn("skipping QR code", zap.Error(err))
		} else if l.register("qr", img) {
			l.image("qr", x+6, imgTop, p.QRSize, p.QRSize, 1)
		}
	}
	if _, ok := l.embed("stamp", d.Company.Stamp); ok {
		l.image("stamp", x+boxW-6-p.StampWidth, imgTop, p.StampWidth, p.StampHeight, 1)
	}

	if name := strings.TrimSpace(d.SalesRep.Name); name != "" {
		rep := "مندوب المبيعات: " + name
		if phone := strings.TrimSpace(d.SalesRep.Phone); phone != "" {
			rep += " - " + phone
		}
		body := textStyle{size: p.SignatureFontSize, color: p.TextColor}
		l.text(x, top+h-lineHeight(body.size)-1.5, boxW, rep, "C", body)
	}
}

func (l *layout) footer(d Data) {
	p := l.p
	top := pageHeight - p.FooterHeight
	l.fill(0, top, pageWidth, p.FooterHeight, p.FooterBackgroundColor, false)

	st := textStyle{size: p.FooterFontSize, color: p.FooterTextColor}
	third := l.contentWidth() / 3
	y := top + (p.FooterHeight-lineHeight(st.size))/2
	l.text(p.MarginLeft+2*third, y, third, d.Company.Name, "R", st)
	l.text(p.MarginLeft+third, y, third, d.Company.Phone, "C", st)
	l.text(p.MarginLeft, y, third, d.Company.Email, "L", st)
}
