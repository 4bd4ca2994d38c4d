package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/arabicwords"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/sangkips/autoquote-api/pkg/pagination"
	"github.com/sangkips/autoquote-api/pkg/pricing"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"go.uber.org/zap"
)

// referenceAttempts bounds the retries when two quotations race for the
// same reference number.
const referenceAttempts = 3

// QuotationSortColumns are the columns a quotation list may be sorted by
var QuotationSortColumns = []string{"issue_date", "reference", "total_amount", "customer_name", "created_at"}

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
	salesRepRepo  repository.SalesRepRepository
	defaults      QuotationDefaults
	log           *zap.Logger
	now           func() time.Time
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	salesRepRepo repository.SalesRepRepository,
	defaults QuotationDefaults,
	log *zap.Logger,
) *QuotationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		salesRepRepo:  salesRepRepo,
		defaults:      defaults,
		log:           log,
		now:           time.Now,
	}
}

// QuotationInput carries the fields of a create or update. On create a nil
// BasePrice takes the vehicle's catalogue price, a nil VATRate takes the
// company or configured rate and a nil IssueDate means today. On update a nil
// pricing field keeps the stored value, except that a nil BasePrice takes the
// catalogue price of a newly selected vehicle.
type QuotationInput struct {
	DocumentType           enum.DocumentType
	CompanyID              *uuid.UUID
	CustomerID             *uuid.UUID
	VehicleID              *uuid.UUID
	SalesRepID             *uuid.UUID
	CustomizationProfileID *uuid.UUID
	CustomerName           *string
	IssueDate              *time.Time
	ValidityDays           *int
	BasePrice              *float64
	Quantity               *int
	VATRate                *float64
	PlatePrice             *float64
	PriceIncludesTax       *bool
	Notes                  *string
	Status                 *enum.QuotationStatus
}

// CreateQuotation prices and stores a new quotation
func (s *QuotationService) CreateQuotation(ctx context.Context, userID uuid.UUID, input *QuotationInput) (*entity.Quotation, error) {
	quotation := &entity.Quotation{
		UserID:       userID,
		DocumentType: enum.DocumentTypeQuotation,
		Status:       enum.QuotationStatusDraft,
	}
	if err := s.assemble(ctx, quotation, input); err != nil {
		return nil, err
	}

	prefix := s.effectiveDefaults(quotation.Company).ReferencePrefix
	for attempt := 1; ; attempt++ {
		nextNum, err := s.quotationRepo.GetNextReferenceNumber(ctx)
		if err != nil {
			return nil, err
		}
		quotation.Reference = utils.FormatReference(prefix, nextNum)

		err = s.quotationRepo.Create(ctx, quotation)
		if err == nil {
			break
		}
		taken, lookupErr := s.quotationRepo.GetByReference(ctx, quotation.Reference)
		if lookupErr != nil || taken == nil || attempt == referenceAttempts {
			return nil, err
		}
		s.log.Warn("quotation reference taken, retrying", zap.String("reference", quotation.Reference))
		quotation.ID = uuid.Nil
	}

	s.log.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("reference", quotation.Reference),
		zap.Float64("total", quotation.TotalAmount))

	return s.quotationRepo.GetByID(ctx, quotation.ID)
}

// GetQuotation retrieves a quotation by ID
func (s *QuotationService) GetQuotation(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if !isAdmin && quotation.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return quotation, nil
}

// ListQuotationsInput represents the input for listing quotations
type ListQuotationsInput struct {
	UserID  uuid.UUID
	IsAdmin bool
	Filter  repository.QuotationFilterParams
}

// ListQuotations lists quotations. Sales users only see their own.
func (s *QuotationService) ListQuotations(ctx context.Context, input *ListQuotationsInput) (*pagination.PaginatedResult[entity.Quotation], error) {
	var userID uuid.UUID
	if !input.IsAdmin {
		userID = input.UserID
	}

	params := input.Filter
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	quotations, total, err := s.quotationRepo.List(ctx, userID, &params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}

// ListAllQuotations returns every quotation matching filter, for reports.
func (s *QuotationService) ListAllQuotations(ctx context.Context, userID uuid.UUID, isAdmin bool, filter repository.QuotationFilterParams) ([]entity.Quotation, error) {
	if isAdmin {
		userID = uuid.Nil
	}
	filter.Pagination = nil
	quotations, _, err := s.quotationRepo.List(ctx, userID, &filter)
	return quotations, err
}

// UpdateQuotation re-prices and stores an existing quotation. The reference
// never changes.
func (s *QuotationService) UpdateQuotation(ctx context.Context, userID, id uuid.UUID, isAdmin bool, input *QuotationInput) (*entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}
	if quotation.Status.IsFinal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("A quotation in status %s cannot be edited", quotation.Status))
	}

	// Drop loaded relations so assemble resolves the new references.
	quotation.Company, quotation.Customer, quotation.Vehicle, quotation.SalesRep = nil, nil, nil, nil
	if err := s.assemble(ctx, quotation, input); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}
	return s.quotationRepo.GetByID(ctx, quotation.ID)
}

// DeleteQuotation deletes a quotation
func (s *QuotationService) DeleteQuotation(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	if _, err := s.GetQuotation(ctx, userID, id, isAdmin); err != nil {
		return err
	}
	return s.quotationRepo.Delete(ctx, id)
}

// UpdateQuotationStatus moves a quotation to status. Accepted, rejected and
// canceled quotations are final.
func (s *QuotationService) UpdateQuotationStatus(ctx context.Context, userID, id uuid.UUID, status enum.QuotationStatus, isAdmin bool) (*entity.Quotation, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown quotation status")
	}
	quotation, err := s.GetQuotation(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}
	if quotation.Status == status {
		return quotation, nil
	}
	if quotation.Status.IsFinal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("A quotation in status %s cannot change status", quotation.Status))
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	quotation.Status = status
	return quotation, nil
}

// assemble resolves the references of input into q, snapshots their names
// and recomputes the pricing, words and validity.
func (s *QuotationService) assemble(ctx context.Context, q *entity.Quotation, input *QuotationInput) error {
	if input.DocumentType != "" {
		if !input.DocumentType.IsValid() {
			return apperror.NewBadRequestError("Unknown document type " + input.DocumentType.String())
		}
		q.DocumentType = input.DocumentType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return apperror.NewBadRequestError("Unknown quotation status")
		}
		q.Status = *input.Status
	}

	company, err := s.resolveCompany(ctx, input.CompanyID)
	if err != nil {
		return err
	}
	q.Company = company
	q.CompanyID = nil
	if company != nil {
		q.CompanyID = &company.ID
	}
	defaults := s.effectiveDefaults(company)

	q.CustomerID = input.CustomerID
	q.CustomerName = ""
	if input.CustomerName != nil {
		q.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		q.CustomerName = customer.Name
	}

	existing := q.ID != uuid.Nil
	vehicleChanged := !sameID(q.VehicleID, input.VehicleID)
	q.VehicleID = input.VehicleID
	var catalogPrice *float64
	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return apperror.NewNotFoundError("Vehicle")
		}
		q.VehicleName = vehicleName(vehicle)
		catalogPrice = &vehicle.BasePrice
	}

	q.SalesRepID = input.SalesRepID
	q.SalesRepName = ""
	if input.SalesRepID != nil {
		rep, err := s.salesRepRepo.GetByID(ctx, *input.SalesRepID)
		if err != nil {
			return err
		}
		if rep == nil {
			return apperror.NewNotFoundError("Sales representative")
		}
		q.SalesRepName = rep.Name
	}
	q.CustomizationProfileID = input.CustomizationProfileID

	in := pricing.Input{Quantity: 1, VATRatePercent: defaults.VATRate}
	if existing {
		in = q.PricingInput()
	}
	switch {
	case input.BasePrice != nil:
		in.BasePrice = *input.BasePrice
	case catalogPrice != nil && (!existing || vehicleChanged):
		in.BasePrice = *catalogPrice
	case !existing:
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "base_price", Message: "is required when no vehicle is selected"},
		})
	}
	if input.Quantity != nil {
		in.Quantity = *input.Quantity
	}
	if input.VATRate != nil {
		in.VATRatePercent = *input.VATRate
	}
	if input.PlatePrice != nil {
		in.PlatePrice = *input.PlatePrice
	}
	if input.PriceIncludesTax != nil {
		in.PriceIncludesTax = *input.PriceIncludesTax
	}
	if err := in.Validate(); err != nil {
		return pricingError(err)
	}
	q.SetPricing(in, pricing.Compute(in))

	q.Currency = currencyName(defaults.Currency)
	q.AmountInWords = arabicwords.FormatAmountWithUnits(pricing.Round2(q.TotalAmount), defaults.units())

	issue := s.now()
	if input.IssueDate != nil && !input.IssueDate.IsZero() {
		issue = *input.IssueDate
	} else if !q.IssueDate.IsZero() {
		issue = q.IssueDate
	}
	q.IssueDate = dateOnly(issue)

	q.ValidityDays = defaults.ValidityDays
	if input.ValidityDays != nil {
		if *input.ValidityDays < 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "validity_days", Message: "must be at least 0"},
			})
		}
		q.ValidityDays = *input.ValidityDays
	}
	q.ValidUntil = nil
	if q.ValidityDays > 0 {
		until := q.IssueDate.AddDate(0, 0, q.ValidityDays)
		q.ValidUntil = &until
	}

	q.Notes = trimmed(input.Notes)
	return nil
}

func (s *QuotationService) resolveCompany(ctx context.Context, id *uuid.UUID) (*entity.Company, error) {
	if id == nil {
		return s.companyRepo.GetPrimary(ctx)
	}
	company, err := s.companyRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// effectiveDefaults overlays the company settings on the configured defaults.
func (s *QuotationService) effectiveDefaults(company *entity.Company) QuotationDefaults {
	d := s.defaults
	if company == nil {
		return d
	}
	set := company.Settings
	if set.Currency != "" {
		d.Currency = set.Currency
	}
	if set.MinorUnit != "" {
		d.MinorUnit = set.MinorUnit
	}
	if set.VATRate > 0 {
		d.VATRate = set.VATRate
	}
	if set.ValidityDays > 0 {
		d.ValidityDays = set.ValidityDays
	}
	if set.QuotationPrefix != "" {
		d.ReferencePrefix = set.QuotationPrefix
	}
	return d
}

func vehicleName(v *entity.Vehicle) string {
	return document.Vehicle{Make: v.Make, Model: v.Model, Year: v.Year}.DisplayName()
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
