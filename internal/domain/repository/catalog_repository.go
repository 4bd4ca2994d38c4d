package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/pkg/pagination"
)

// ListFilter is shared by the catalogue lists
type ListFilter struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	// GetPrimary returns the oldest active company, used when a quotation
	// names no company.
	GetPrimary(ctx context.Context) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ListFilter) ([]entity.Company, int64, error)
}

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ListFilter) ([]entity.Vehicle, int64, error)
}

// SalesRepRepository defines the interface for sales representative data operations
type SalesRepRepository interface {
	Create(ctx context.Context, rep *entity.SalesRepresentative) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesRepresentative, error)
	Update(ctx context.Context, rep *entity.SalesRepresentative) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ListFilter) ([]entity.SalesRepresentative, int64, error)
}

// TermConditionRepository defines the interface for terms and conditions
type TermConditionRepository interface {
	Create(ctx context.Context, term *entity.TermCondition) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TermCondition, error)
	Update(ctx context.Context, term *entity.TermCondition) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every term ordered by display_order then creation time.
	List(ctx context.Context) ([]entity.TermCondition, error)
	// ListActive is List restricted to active terms.
	ListActive(ctx context.Context) ([]entity.TermCondition, error)
	Count(ctx context.Context) (int64, error)
}
