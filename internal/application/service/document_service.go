package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/arabicwords"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/sangkips/autoquote-api/pkg/email"
	"github.com/sangkips/autoquote-api/pkg/pricing"
	"github.com/sangkips/autoquote-api/pkg/report"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"go.uber.org/zap"
)

const registerDocType = "register"

// Renderer draws a quotation document
type Renderer interface {
	Render(ctx context.Context, data document.Data, profile *document.Profile) ([]byte, error)
}

// RegisterGenerator draws the quotation register
type RegisterGenerator interface {
	Generate(ctx context.Context, title string, rows []report.RegisterRow) ([]byte, error)
}

// Mailer delivers quotation emails
type Mailer interface {
	Enabled() bool
	SendQuotation(msg email.QuotationMessage) error
}

// RenderObserver records render outcomes
type RenderObserver interface {
	ObserveRender(docType string, elapsed time.Duration, err error)
}

// RenderedDocument is a generated PDF ready for download
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// DocumentService turns stored quotations into PDF documents
type DocumentService struct {
	quotations    *QuotationService
	quotationRepo repository.QuotationRepository
	termRepo      repository.TermConditionRepository
	profiles      *CustomizationService
	renderer      Renderer
	register      RegisterGenerator
	mailer        Mailer
	observer      RenderObserver
	renderTimeout time.Duration
	log           *zap.Logger
	now           func() time.Time
}

// DocumentServiceConfig groups the collaborators of a DocumentService
type DocumentServiceConfig struct {
	Quotations    *QuotationService
	QuotationRepo repository.QuotationRepository
	TermRepo      repository.TermConditionRepository
	Profiles      *CustomizationService
	Renderer      Renderer
	Register      RegisterGenerator
	Mailer        Mailer
	Observer      RenderObserver
	RenderTimeout time.Duration
	Logger        *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(cfg DocumentServiceConfig) *DocumentService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 20 * time.Second
	}
	return &DocumentService{
		quotations:    cfg.Quotations,
		quotationRepo: cfg.QuotationRepo,
		termRepo:      cfg.TermRepo,
		profiles:      cfg.Profiles,
		renderer:      cfg.Renderer,
		register:      cfg.Register,
		mailer:        cfg.Mailer,
		observer:      cfg.Observer,
		renderTimeout: cfg.RenderTimeout,
		log:           cfg.Logger,
		now:           time.Now,
	}
}

// BuildData assembles everything the renderer reads for q. Names come from
// the snapshots taken when the quotation was saved.
func (s *DocumentService) BuildData(ctx context.Context, q *entity.Quotation) (document.Data, error) {
	terms, err := s.termRepo.ListActive(ctx)
	if err != nil {
		return document.Data{}, err
	}

	data := document.Data{
		Type:          document.Type(q.DocumentType),
		Number:        q.Reference,
		IssueDate:     q.IssueDate,
		ValidityDays:  q.ValidityDays,
		Customer:      document.Customer{Name: q.CustomerName},
		Vehicle:       document.Vehicle{Make: q.VehicleName},
		SalesRep:      document.SalesRep{Name: q.SalesRepName},
		Pricing:       q.PricingInput(),
		Result:        q.PricingResult(),
		Currency:      q.Currency,
		AmountInWords: q.AmountInWords,
		Notes:         deref(q.Notes),
	}
	if q.ValidUntil != nil {
		data.ValidUntil = *q.ValidUntil
	}
	if data.AmountInWords == "" {
		data.AmountInWords = arabicwords.FormatAmount(pricing.Round2(q.TotalAmount), q.Currency)
	}

	if c := q.Customer; c != nil {
		data.Customer = document.Customer{
			Name:       firstNonEmpty(q.CustomerName, c.Name),
			NationalID: deref(c.NationalID),
			Phone:      deref(c.Phone),
			Email:      deref(c.Email),
			Address:    deref(c.Address),
		}
	}
	if v := q.Vehicle; v != nil {
		data.Vehicle = document.Vehicle{
			Make:           v.Make,
			Model:          v.Model,
			Year:           v.Year,
			VIN:            deref(v.VIN),
			ExteriorColor:  deref(v.ExteriorColor),
			InteriorColor:  deref(v.InteriorColor),
			Specifications: deref(v.Specifications),
		}
	}
	if c := q.Company; c != nil {
		data.Company = document.Company{
			Name:           c.Name,
			CRNumber:       deref(c.CRNumber),
			VATNumber:      deref(c.VATNumber),
			Phone:          deref(c.Phone),
			Email:          deref(c.Email),
			Address:        deref(c.Address),
			Logo:           deref(c.Logo),
			Stamp:          deref(c.Stamp),
			PrimaryColor:   deref(c.PrimaryColor),
			SecondaryColor: deref(c.SecondaryColor),
		}
	}
	if r := q.SalesRep; r != nil {
		data.SalesRep = document.SalesRep{
			Name:  firstNonEmpty(q.SalesRepName, r.Name),
			Phone: deref(r.Phone),
		}
	}

	for _, t := range terms {
		data.Terms = append(data.Terms, document.Term{
			Text:         t.Text,
			DisplayOrder: t.DisplayOrder,
			IsActive:     t.IsActive,
		})
	}
	data.Terms = document.ActiveTerms(data.Terms)

	return data, nil
}

// RenderQuotation renders the quotation id as a PDF
func (s *DocumentService) RenderQuotation(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*RenderedDocument, error) {
	q, err := s.quotations.GetQuotation(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, q)
}

func (s *DocumentService) render(ctx context.Context, q *entity.Quotation) (*RenderedDocument, error) {
	data, err := s.BuildData(ctx, q)
	if err != nil {
		return nil, err
	}
	profile := s.profiles.Resolve(ctx, q.CustomizationProfileID)

	ctx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.renderer.Render(ctx, data, profile)
	s.observe(q.DocumentType.String(), time.Since(start), err)
	if err != nil {
		s.log.Error("failed to render quotation",
			zap.String("quotation_id", q.ID.String()),
			zap.String("reference", q.Reference),
			zap.Error(err))
		return nil, renderError(ctx, err)
	}

	return &RenderedDocument{
		Filename: utils.DocumentFilename(q.CustomerName, q.Reference),
		Content:  content,
	}, nil
}

// EmailQuotationInput names the recipient of an emailed quotation. An empty
// To sends to the customer's stored address.
type EmailQuotationInput struct {
	UserID  uuid.UUID
	ID      uuid.UUID
	IsAdmin bool
	To      string
	Subject string
	Note    string
}

// EmailQuotation renders the quotation and mails it. A draft is marked sent
// once the message is accepted by the mail server.
func (s *DocumentService) EmailQuotation(ctx context.Context, input *EmailQuotationInput) (*entity.Quotation, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return nil, apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "Email delivery is not configured")
	}

	q, err := s.quotations.GetQuotation(ctx, input.UserID, input.ID, input.IsAdmin)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(input.To)
	if to == "" && q.Customer != nil {
		to = deref(q.Customer.Email)
	}
	if to == "" {
		return nil, apperror.NewBadRequestError("No recipient address and the customer has no email")
	}

	doc, err := s.render(ctx, q)
	if err != nil {
		return nil, err
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = document.Type(q.DocumentType).Title() + " " + q.Reference
	}
	companyName := ""
	if q.Company != nil {
		companyName = q.Company.Name
	}

	err = s.mailer.SendQuotation(email.QuotationMessage{
		To:           to,
		Subject:      subject,
		CustomerName: q.CustomerName,
		Reference:    q.Reference,
		CompanyName:  companyName,
		Note:         strings.TrimSpace(input.Note),
		Attachment: email.Attachment{
			Filename:    doc.Filename,
			ContentType: "application/pdf",
			Data:        doc.Content,
		},
	})
	if err != nil {
		s.log.Error("failed to email quotation", zap.String("reference", q.Reference), zap.Error(err))
		if errors.Is(err, email.ErrNotConfigured) {
			return nil, apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "Email delivery is not configured")
		}
		return nil, apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "Failed to send email")
	}
	s.log.Info("quotation emailed", zap.String("reference", q.Reference), zap.String("to", to))

	if q.Status == enum.QuotationStatusDraft {
		if err := s.quotationRepo.UpdateStatus(ctx, q.ID, enum.QuotationStatusSent); err != nil {
			s.log.Warn("failed to mark quotation sent", zap.String("reference", q.Reference), zap.Error(err))
		} else {
			q.Status = enum.QuotationStatusSent
		}
	}
	return q, nil
}

// RenderRegister renders every quotation matching filter as a register
func (s *DocumentService) RenderRegister(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repository.QuotationFilterParams) (*RenderedDocument, error) {
	quotations, err := s.quotations.ListAllQuotations(ctx, userID, isAdmin, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]report.RegisterRow, len(quotations))
	for i, q := range quotations {
		rows[i] = report.RegisterRow{
			Reference: q.Reference,
			Type:      q.DocumentType.String(),
			IssueDate: q.IssueDate,
			Customer:  q.CustomerName,
			Vehicle:   q.VehicleName,
			SalesRep:  q.SalesRepName,
			Total:     q.TotalAmount,
			Status:    q.Status.String(),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.register.Generate(ctx, "Quotation Register", rows)
	s.observe(registerDocType, time.Since(start), err)
	if err != nil {
		s.log.Error("failed to render register", zap.Int("rows", len(rows)), zap.Error(err))
		return nil, renderError(ctx, err)
	}

	return &RenderedDocument{
		Filename: "quotation-register-" + s.now().Format("2006-01-02") + ".pdf",
		Content:  content,
	}, nil
}

func (s *DocumentService) observe(docType string, elapsed time.Duration, err error) {
	if s.observer != nil {
		s.observer.ObserveRender(docType, elapsed, err)
	}
}

func renderError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "Document rendering timed out")
	}
	return apperror.NewAppError(apperror.ErrInternalServer.Code, "Failed to render document")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
