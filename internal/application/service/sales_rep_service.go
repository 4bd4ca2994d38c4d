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

// SalesRepService manages sales representatives
type SalesRepService struct {
	repRepo repository.SalesRepRepository
}

// NewSalesRepService creates a new sales representative service
func NewSalesRepService(repRepo repository.SalesRepRepository) *SalesRepService {
	return &SalesRepService{repRepo: repRepo}
}

// SalesRepInput carries the writable sales representative fields
type SalesRepInput struct {
	Name     *string
	Phone    *string
	Email    *string
	IsActive *bool
}

func (in *SalesRepInput) apply(r *entity.SalesRepresentative) {
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		r.Phone = trimmed(in.Phone)
	}
	if in.Email != nil {
		r.Email = trimmed(in.Email)
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
}

// CreateSalesRep creates a sales representative
func (s *SalesRepService) CreateSalesRep(ctx context.Context, input *SalesRepInput) (*entity.SalesRepresentative, error) {
	rep := &entity.SalesRepresentative{IsActive: true}
	input.apply(rep)
	if rep.Name == "" {
		return nil, apperror.NewBadRequestError("Name is required")
	}

	if err := s.repRepo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// GetSalesRep retrieves a sales representative by ID
func (s *SalesRepService) GetSalesRep(ctx context.Context, id uuid.UUID) (*entity.SalesRepresentative, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, apperror.NewNotFoundError("Sales representative")
	}
	return rep, nil
}

// ListSalesReps lists sales representatives
func (s *SalesRepService) ListSalesReps(ctx context.Context, filter *repository.ListFilter) (*pagination.PaginatedResult[entity.SalesRepresentative], error) {
	reps, total, err := s.repRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reps, pag), nil
}

// UpdateSalesRep updates a sales representative
func (s *SalesRepService) UpdateSalesRep(ctx context.Context, id uuid.UUID, input *SalesRepInput) (*entity.SalesRepresentative, error) {
	rep, err := s.GetSalesRep(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(rep)
	if rep.Name == "" {
		return nil, apperror.NewBadRequestError("Name is required")
	}

	if err := s.repRepo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// DeleteSalesRep deletes a sales representative
func (s *SalesRepService) DeleteSalesRep(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSalesRep(ctx, id); err != nil {
		return err
	}
	return s.repRepo.Delete(ctx, id)
}
