// Package document renders quotations and invoices as single-page A4 Arabic
// PDFs driven by a customization Profile.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/autoquote-api/pkg/arabicwords"
	"go.uber.org/zap"
)

// ErrRender wraps failures that prevent a document from being produced.
var ErrRender = errors.New("render document")

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	ptToMM     = 0.3528

	maxSpecLines = 8
	fontFamily   = "arabic"
	coreFamily   = "Helvetica"
)

// QRGenerator returns a PNG QR code encoding payload.
type QRGenerator interface {
	Generate(ctx context.Context, payload string) ([]byte, error)
}

// Fonts points at the TrueType files used for Arabic text. BoldPath is
// optional and defaults to RegularPath.
type Fonts struct {
	RegularPath string
	BoldPath    string
}

// Options configures a Renderer.
type Options struct {
	Fonts        Fonts
	QR           QRGenerator
	Logger       *zap.Logger
	ArabicDigits bool
	Currency     string
	Now          func() time.Time
}

// Renderer draws documents. It keeps no per-document state and is safe for
// concurrent use.
type Renderer struct {
	regular  []byte
	bold     []byte
	qr       QRGenerator
	log      *zap.Logger
	format   *Formatter
	currency string
	now      func() time.Time
}

// NewRenderer loads the configured fonts. Without a regular font the
// renderer falls back to the core Helvetica font, which cannot draw Arabic
// glyphs.
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{
		qr:       opts.QR,
		log:      opts.Logger,
		format:   NewFormatter(opts.ArabicDigits),
		currency: opts.Currency,
		now:      opts.Now,
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.currency == "" {
		r.currency = arabicwords.DefaultCurrency
	}
	if r.now == nil {
		r.now = time.Now
	}

	if opts.Fonts.RegularPath == "" {
		r.log.Warn("no Arabic font configured, using core Helvetica")
		return r, nil
	}
	regular, err := os.ReadFile(opts.Fonts.RegularPath)
	if err != nil {
		return nil, fmt.Errorf("read regular font: %w", err)
	}
	r.regular, r.bold = regular, regular
	if opts.Fonts.BoldPath != "" {
		if r.bold, err = os.ReadFile(opts.Fonts.BoldPath); err != nil {
			return nil, fmt.Errorf("read bold font: %w", err)
		}
	}
	return r, nil
}

// Formatter returns the number and date formatter used in documents.
func (r *Renderer) Formatter() *Formatter {
	return r.format
}

// Render draws data with profile and returns the PDF bytes. A nil profile
// uses DefaultProfile. Logo, watermark, stamp and QR failures are logged and
// the element is left out; any other failure returns an error wrapping
// ErrRender and no bytes.
func (r *Renderer) Render(ctx context.Context, data Data, profile *Profile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	p := profile.Normalize()
	applyTheme(p, data.Company)

	number := data.Number
	if number == "" {
		number = FallbackNumber(r.now())
	}
	if data.IssueDate.IsZero() {
		data.IssueDate = r.now()
	}
	currency := data.Currency
	if currency == "" {
		currency = r.currency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(data.Type.Title()+" "+number, true)
	pdf.SetAuthor(data.Company.Name, true)
	pdf.SetCreator("autoquote-api", false)

	family := coreFamily
	if r.regular != nil {
		pdf.AddUTF8FontFromBytes(fontFamily, "", r.regular)
		pdf.AddUTF8FontFromBytes(fontFamily, "B", r.bold)
		family = fontFamily
	}
	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	l := &layout{
		pdf:      pdf,
		p:        p,
		family:   family,
		log:      r.log.With(zap.String("document", number)),
		format:   r.format,
		qr:       r.qr,
		currency: currency,
	}
	l.build(ctx, data, number)
	l.flush()

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// applyTheme lets company colours replace profile colours the profile left
// at their defaults.
func applyTheme(p *Profile, c Company) {
	def := DefaultProfile()
	if primary, ok := normalizeHex(c.PrimaryColor); ok {
		if p.HeaderBackgroundColor == def.HeaderBackgroundColor {
			p.HeaderBackgroundColor = primary
		}
		if p.FooterBackgroundColor == def.FooterBackgroundColor {
			p.FooterBackgroundColor = primary
		}
	}
	if secondary, ok := normalizeHex(c.SecondaryColor); ok {
		if p.SectionTitleColor == def.SectionTitleColor {
			p.SectionTitleColor = secondary
		}
	}
}
