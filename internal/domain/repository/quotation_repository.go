package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	// GetByID loads the quotation with its company, customer, vehicle and
	// sales representative.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List filters by creator unless userID is uuid.Nil. A nil Pagination
	// returns every match.
	List(ctx context.Context, userID uuid.UUID, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error
	// GetNextReferenceNumber counts soft-deleted rows too so references are
	// never reused.
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.QuotationStatus
	DocumentType *enum.DocumentType
	CompanyID    *uuid.UUID
	CustomerID   *uuid.UUID
	VehicleID    *uuid.UUID
	From         *time.Time
	To           *time.Time
	Sort         pagination.Sort
}
