package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/pkg/apperror"
)

// TermService manages the terms and conditions printed on documents
type TermService struct {
	termRepo repository.TermConditionRepository
}

// NewTermService creates a new terms service
func NewTermService(termRepo repository.TermConditionRepository) *TermService {
	return &TermService{termRepo: termRepo}
}

// TermInput carries the writable term fields
type TermInput struct {
	Text         *string
	DisplayOrder *int
	IsActive     *bool
}

func (in *TermInput) apply(t *entity.TermCondition) {
	if in.Text != nil {
		t.Text = strings.TrimSpace(*in.Text)
	}
	if in.DisplayOrder != nil {
		t.DisplayOrder = *in.DisplayOrder
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

// CreateTerm creates a term. Without an explicit order the term is appended
// after the existing ones.
func (s *TermService) CreateTerm(ctx context.Context, input *TermInput) (*entity.TermCondition, error) {
	term := &entity.TermCondition{IsActive: true}
	if input.DisplayOrder == nil {
		count, err := s.termRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		term.DisplayOrder = int(count) + 1
	}
	input.apply(term)
	if term.Text == "" {
		return nil, apperror.NewBadRequestError("Term text is required")
	}

	if err := s.termRepo.Create(ctx, term); err != nil {
		return nil, err
	}
	return term, nil
}

// GetTerm retrieves a term by ID
func (s *TermService) GetTerm(ctx context.Context, id uuid.UUID) (*entity.TermCondition, error) {
	term, err := s.termRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, apperror.NewNotFoundError("Term")
	}
	return term, nil
}

// ListTerms returns all terms, or only the active ones, in display order
func (s *TermService) ListTerms(ctx context.Context, activeOnly bool) ([]entity.TermCondition, error) {
	if activeOnly {
		return s.termRepo.ListActive(ctx)
	}
	return s.termRepo.List(ctx)
}

// UpdateTerm updates a term
func (s *TermService) UpdateTerm(ctx context.Context, id uuid.UUID, input *TermInput) (*entity.TermCondition, error) {
	term, err := s.GetTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(term)
	if term.Text == "" {
		return nil, apperror.NewBadRequestError("Term text is required")
	}

	if err := s.termRepo.Update(ctx, term); err != nil {
		return nil, err
	}
	return term, nil
}

// DeleteTerm deletes a term
func (s *TermService) DeleteTerm(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTerm(ctx, id); err != nil {
		return err
	}
	return s.termRepo.Delete(ctx, id)
}
