package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/pagination"
)

// CompanyService manages the issuing companies
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput carries the writable company fields. Nil pointers leave the
// stored value unchanged on update.
type CompanyInput struct {
	Name           *string
	NameEnglish    *string
	CRNumber       *string
	VATNumber      *string
	Phone          *string
	Email          *string
	Address        *string
	Logo           *string
	Stamp          *string
	PrimaryColor   *string
	SecondaryColor *string
	Settings       *entity.CompanySettings
	IsActive       *bool
}

func (in *CompanyInput) apply(c *entity.Company) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	assign := func(dst **string, src *string) {
		if src != nil {
			*dst = trimmed(src)
		}
	}
	assign(&c.NameEnglish, in.NameEnglish)
	assign(&c.CRNumber, in.CRNumber)
	assign(&c.VATNumber, in.VATNumber)
	assign(&c.Phone, in.Phone)
	assign(&c.Email, in.Email)
	assign(&c.Address, in.Address)
	assign(&c.Logo, in.Logo)
	assign(&c.Stamp, in.Stamp)
	assign(&c.PrimaryColor, in.PrimaryColor)
	assign(&c.SecondaryColor, in.SecondaryColor)
	if in.Settings != nil {
		c.Settings = *in.Settings
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

// CreateCompany creates a company
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewBadRequestError("Company name is required")
	}
	company := &entity.Company{IsActive: true}
	input.apply(company)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// ListCompanies lists companies
func (s *CompanyService) ListCompanies(ctx context.Context, filter *repository.ListFilter) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// UpdateCompany updates a company
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewBadRequestError("Company name is required")
	}
	input.apply(company)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany deletes a company
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCompany(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, id)
}
