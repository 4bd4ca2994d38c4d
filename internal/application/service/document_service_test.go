package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	infraRepo "github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/sangkips/autoquote-api/pkg/email"
	"github.com/sangkips/autoquote-api/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	data    document.Data
	profile *document.Profile
	block   bool
	err     error
}

func (r *stubRenderer) Render(ctx context.Context, data document.Data, profile *document.Profile) ([]byte, error) {
	r.data, r.profile = data, profile
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

type stubRegister struct {
	title string
	rows  []report.RegisterRow
}

func (r *stubRegister) Generate(_ context.Context, title string, rows []report.RegisterRow) ([]byte, error) {
	r.title, r.rows = title, rows
	return []byte("%PDF-1.4 register"), nil
}

type stubMailer struct {
	enabled bool
	err     error
	sent    []email.QuotationMessage
}

func (m *stubMailer) Enabled() bool { return m.enabled }

func (m *stubMailer) SendQuotation(msg email.QuotationMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type observation struct {
	docType string
	failed  bool
}

type stubObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (o *stubObserver) ObserveRender(docType string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.obs = append(o.obs, observation{docType: docType, failed: err != nil})
}

type documentFixture struct {
	*fixture
	docs     *DocumentService
	renderer *stubRenderer
	register *stubRegister
	mailer   *stubMailer
	observer *stubObserver
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	f := newFixture(t)
	d := &documentFixture{
		fixture:  f,
		renderer: &stubRenderer{},
		register: &stubRegister{},
		mailer:   &stubMailer{enabled: true},
		observer: &stubObserver{},
	}
	d.docs = NewDocumentService(DocumentServiceConfig{
		Quotations:    f.quotations,
		QuotationRepo: infraRepo.NewQuotationRepository(f.db),
		TermRepo:      infraRepo.NewTermConditionRepository(f.db),
		Profiles:      f.profiles,
		Renderer:      d.renderer,
		Register:      d.register,
		Mailer:        d.mailer,
		Observer:      d.observer,
		RenderTimeout: 50 * time.Millisecond,
	})
	d.docs.now = func() time.Time { return time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC) }

	terms := infraRepo.NewTermConditionRepository(f.db)
	ctx := context.Background()
	require.NoError(t, terms.Create(ctx, &entity.TermCondition{Text: "الأسعار شاملة الضريبة", DisplayOrder: 2, IsActive: true}))
	require.NoError(t, terms.Create(ctx, &entity.TermCondition{Text: "العرض ساري لمدة محدودة", DisplayOrder: 1, IsActive: true}))
	require.NoError(t, terms.Create(ctx, &entity.TermCondition{Text: "ملغى", DisplayOrder: 0, IsActive: false}))
	return d
}

func (d *documentFixture) createQuotation(t *testing.T, userID uuid.UUID) *entity.Quotation {
	t.Helper()
	q, err := d.quotations.CreateQuotation(context.Background(), userID, &QuotationInput{
		CustomerID: &d.customer.ID,
		VehicleID:  &d.vehicle.ID,
		SalesRepID: &d.rep.ID,
	})
	require.NoError(t, err)
	return q
}

func TestDocumentService_RenderQuotation(t *testing.T) {
	d := newDocumentFixture(t)
	userID := uuid.New()
	q := d.createQuotation(t, userID)

	doc, err := d.docs.RenderQuotation(context.Background(), userID, q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 stub"), doc.Content)
	assert.True(t, strings.HasSuffix(doc.Filename, "qt-000001.pdf"), doc.Filename)

	data := d.renderer.data
	assert.Equal(t, document.TypeQuotation, data.Type)
	assert.Equal(t, q.Reference, data.Number)
	assert.Equal(t, d.customer.Name, data.Customer.Name)
	assert.Equal(t, "Toyota", data.Vehicle.Make)
	assert.Equal(t, 2024, data.Vehicle.Year)
	assert.Equal(t, d.company.Name, data.Company.Name)
	assert.Equal(t, q.AmountInWords, data.AmountInWords)
	assert.InDelta(t, 115000, data.Result.Total, 0.001)

	require.Len(t, data.Terms, 2, "inactive terms are not printed")
	assert.Equal(t, "العرض ساري لمدة محدودة", data.Terms[0].Text)

	assert.Equal(t, document.DefaultProfile(), d.renderer.profile)
	require.Len(t, d.observer.obs, 1)
	assert.Equal(t, observation{docType: "quotation"}, d.observer.obs[0])
}

func TestDocumentService_RenderUsesQuotationProfile(t *testing.T) {
	d := newDocumentFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := d.profiles.CreateProfile(ctx, &ProfileInput{Name: "Default"})
	require.NoError(t, err)
	wide, err := d.profiles.CreateProfile(ctx, &ProfileInput{
		Name:    "Wide margins",
		Profile: document.Profile{MarginLeft: 30, MarginRight: 30},
	})
	require.NoError(t, err)

	price := 1000.0
	q, err := d.quotations.CreateQuotation(ctx, userID, &QuotationInput{
		BasePrice:              &price,
		CustomizationProfileID: &wide.ID,
	})
	require.NoError(t, err)

	_, err = d.docs.RenderQuotation(ctx, userID, q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 30.0, d.renderer.profile.MarginLeft)
}

func TestDocumentService_RenderErrors(t *testing.T) {
	d := newDocumentFixture(t)
	userID := uuid.New()
	q := d.createQuotation(t, userID)

	_, err := d.docs.RenderQuotation(context.Background(), uuid.New(), q.ID, false)
	requireStatus(t, err, http.StatusForbidden)

	d.renderer.block = true
	_, err = d.docs.RenderQuotation(context.Background(), userID, q.ID, false)
	requireStatus(t, err, http.StatusServiceUnavailable)

	d.renderer.block = false
	d.renderer.err = errors.New("font missing")
	_, err = d.docs.RenderQuotation(context.Background(), userID, q.ID, false)
	requireStatus(t, err, http.StatusInternalServerError)

	require.Len(t, d.observer.obs, 2)
	assert.True(t, d.observer.obs[0].failed)
	assert.True(t, d.observer.obs[1].failed)
}

func TestDocumentService_EmailQuotation(t *testing.T) {
	d := newDocumentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	q := d.createQuotation(t, userID)

	_, err := d.docs.EmailQuotation(ctx, &EmailQuotationInput{UserID: userID, ID: q.ID})
	requireStatus(t, err, http.StatusBadRequest)

	sent, err := d.docs.EmailQuotation(ctx, &EmailQuotationInput{
		UserID: userID,
		ID:     q.ID,
		To:     "buyer@example.com",
		Note:   " شكرا لتواصلكم ",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusSent, sent.Status)

	require.Len(t, d.mailer.sent, 1)
	msg := d.mailer.sent[0]
	assert.Equal(t, "buyer@example.com", msg.To)
	assert.Contains(t, msg.Subject, q.Reference)
	assert.Equal(t, "شكرا لتواصلكم", msg.Note)
	assert.Equal(t, d.company.Name, msg.CompanyName)
	assert.Equal(t, "application/pdf", msg.Attachment.ContentType)
	assert.NotEmpty(t, msg.Attachment.Data)

	stored, err := d.quotations.GetQuotation(ctx, userID, q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusSent, stored.Status)
}

func TestDocumentService_EmailUnavailable(t *testing.T) {
	d := newDocumentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	q := d.createQuotation(t, userID)

	d.mailer.enabled = false
	_, err := d.docs.EmailQuotation(ctx, &EmailQuotationInput{UserID: userID, ID: q.ID, To: "a@b.co"})
	requireStatus(t, err, http.StatusServiceUnavailable)

	d.mailer.enabled = true
	d.mailer.err = errors.New("connection refused")
	_, err = d.docs.EmailQuotation(ctx, &EmailQuotationInput{UserID: userID, ID: q.ID, To: "a@b.co"})
	requireStatus(t, err, http.StatusServiceUnavailable)

	stored, err := d.quotations.GetQuotation(ctx, userID, q.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusDraft, stored.Status, "a failed send leaves the draft alone")
}

func TestDocumentService_RenderRegister(t *testing.T) {
	d := newDocumentFixture(t)
	userID := uuid.New()
	d.createQuotation(t, userID)
	d.createQuotation(t, userID)
	d.createQuotation(t, uuid.New())

	doc, err := d.docs.RenderRegister(context.Background(), userID, false, repository.QuotationFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, "quotation-register-2024-05-21.pdf", doc.Filename)
	assert.Len(t, d.register.rows, 2)
	assert.Equal(t, "Toyota Camry 2024", d.register.rows[0].Vehicle)

	_, err = d.docs.RenderRegister(context.Background(), userID, true, repository.QuotationFilterParams{})
	require.NoError(t, err)
	assert.Len(t, d.register.rows, 3)

	require.Len(t, d.observer.obs, 2)
	assert.Equal(t, "register", d.observer.obs[0].docType)
}
