package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sangkips/autoquote-api/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubQR struct {
	png      []byte
	err      error
	payloads []string
}

func (s *stubQR) Generate(_ context.Context, payload string) ([]byte, error) {
	s.payloads = append(s.payloads, payload)
	return s.png, s.err
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 58, B: 138, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURL(raw []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func sampleData(t *testing.T) Data {
	in := pricing.Input{BasePrice: 100000, Quantity: 1, VATRatePercent: 15, PlatePrice: 500}
	return Data{
		Type:      TypeQuotation,
		Number:    "QT-000001",
		IssueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Customer:  Customer{Name: "محمد العتيبي", Phone: "0500000000"},
		Vehicle: Vehicle{
			Make: "تويوتا", Model: "كامري", Year: 2026, VIN: "JT123456789",
			Specifications: "محرك 2.5 لتر\nناقل حركة أوتوماتيك\n\nشاشة 9 بوصة",
		},
		Company: Company{
			Name: "شركة السيارات الحديثة", Phone: "0110000000", Email: "sales@example.com",
			Logo: dataURL(testPNG(t, 40, 20)), Stamp: dataURL(testPNG(t, 20, 20)),
		},
		SalesRep: SalesRep{Name: "أحمد"},
		Pricing:  in,
		Result:   pricing.Compute(in),
		Terms: []Term{
			{Text: "السعر شامل الضريبة", DisplayOrder: 2, IsActive: true},
			{Text: "لا يشمل التأمين", DisplayOrder: 1, IsActive: true},
			{Text: "ملغي", DisplayOrder: 0, IsActive: false},
		},
		ValidityDays: 15,
	}
}

func newTestRenderer(t *testing.T, qr QRGenerator, log *zap.Logger) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{
		QR:     qr,
		Logger: log,
		Now:    func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return r
}

func TestRender_ProducesPDF(t *testing.T) {
	qr := &stubQR{png: testPNG(t, 25, 25)}
	r := newTestRenderer(t, qr, nil)

	out, err := r.Render(context.Background(), sampleData(t), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.Len(t, qr.payloads, 1)
	assert.Contains(t, qr.payloads[0], "محمد العتيبي")
	assert.Contains(t, qr.payloads[0], "115,500.00")
}

func TestRender_DegradesOnBrokenImages(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	qr := &stubQR{err: errors.New("qr service down")}
	r := newTestRenderer(t, qr, zap.New(core))

	data := sampleData(t)
	data.Company.Logo = "data:image/png;base64,not-an-image"
	data.Company.Stamp = dataURL([]byte("plain text"))

	out, err := r.Render(context.Background(), data, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	skipped := map[string]bool{}
	for _, entry := range logs.All() {
		skipped[entry.Message] = true
	}
	assert.True(t, skipped["skipping image"])
	assert.True(t, skipped["skipping QR code"])
}

func TestRender_MinimalData(t *testing.T) {
	r := newTestRenderer(t, nil, nil)

	out, err := r.Render(context.Background(), Data{}, &Profile{HeaderHeight: 60})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_CanceledContext(t *testing.T) {
	r := newTestRenderer(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, sampleData(t), nil)
	assert.ErrorIs(t, err, ErrRender)
}

func TestNewRenderer_MissingFont(t *testing.T) {
	_, err := NewRenderer(Options{Fonts: Fonts{RegularPath: "/nonexistent/font.ttf"}})
	assert.Error(t, err)
}

func TestLayout_FlushOrdersLayers(t *testing.T) {
	var order []string
	l := &layout{pdf: gofpdf.New("P", "mm", "A4", "")}
	l.add(layerForeground, func(*gofpdf.Fpdf) { order = append(order, "title") })
	l.add(layerImage, func(*gofpdf.Fpdf) { order = append(order, "logo") })
	l.add(layerBackground, func(*gofpdf.Fpdf) { order = append(order, "header") })
	l.add(layerImage, func(*gofpdf.Fpdf) { order = append(order, "watermark") })
	l.add(layerBackground, func(*gofpdf.Fpdf) { order = append(order, "footer") })

	l.flush()

	assert.Equal(t, []string{"header", "footer", "logo", "watermark", "title"}, order)
}

func TestFallbackNumber(t *testing.T) {
	now := time.UnixMilli(1760000000123)
	assert.Equal(t, "Q00000123", FallbackNumber(now))
}

func TestActiveTerms(t *testing.T) {
	terms := ActiveTerms([]Term{
		{Text: "c", DisplayOrder: 3, IsActive: true},
		{Text: "a", DisplayOrder: 1, IsActive: true},
		{Text: "hidden", DisplayOrder: 0, IsActive: false},
		{Text: "b", DisplayOrder: 1, IsActive: true},
		{Text: "  ", DisplayOrder: 0, IsActive: true},
	})

	var got []string
	for _, term := range terms {
		got = append(got, term.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSpecificationLines(t *testing.T) {
	specs := "1\n2\r\n\n3\n4\n5\n6\n7\n8\n9\n10"
	lines := SpecificationLines(specs, 8)
	assert.Len(t, lines, 8)
	assert.Equal(t, "8", lines[7])
}

func TestVehicleDisplayName(t *testing.T) {
	assert.Equal(t, "تويوتا كامري 2026", Vehicle{Make: "تويوتا", Model: "كامري", Year: 2026}.DisplayName())
	assert.Equal(t, NotSpecified, Vehicle{}.DisplayName())
}

func TestDecodeImage(t *testing.T) {
	raw := testPNG(t, 8, 4)

	img, err := decodeImage(dataURL(raw))
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.kind)
	assert.InDelta(t, 0.5, img.aspect(), 1e-9)

	_, err = decodeImage(base64.StdEncoding.EncodeToString(raw))
	assert.NoError(t, err)

	_, err = decodeImage("")
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = decodeImage("data:image/png,rawdata")
	assert.Error(t, err)
}
