package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/document"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomizationService manages document customization profiles and resolves
// the profile a render uses.
type CustomizationService struct {
	profileRepo repository.CustomizationProfileRepository
	validate    *validator.Validate
	log         *zap.Logger
}

// NewCustomizationService creates a new customization service
func NewCustomizationService(profileRepo repository.CustomizationProfileRepository, log *zap.Logger) *CustomizationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomizationService{
		profileRepo: profileRepo,
		validate:    apperror.NewValidator(),
		log:         log,
	}
}

// ProfileInput is a full profile write. Zero parameters are stored as zero
// and resolve to the built-in defaults at render time.
type ProfileInput struct {
	Name      string
	IsDefault *bool
	Profile   document.Profile
}

func (s *CustomizationService) check(input *ProfileInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	if err := s.validate.Struct(&input.Profile); err != nil {
		return apperror.FromValidation(err)
	}
	return nil
}

// ListProfiles returns every profile, the default first
func (s *CustomizationService) ListProfiles(ctx context.Context) ([]entity.CustomizationProfile, error) {
	return s.profileRepo.List(ctx)
}

// GetProfile retrieves a profile by ID
func (s *CustomizationService) GetProfile(ctx context.Context, id uuid.UUID) (*entity.CustomizationProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Customization profile")
	}
	return profile, nil
}

// CreateProfile stores a profile. The first profile ever created becomes
// the default whatever the input says.
func (s *CustomizationService) CreateProfile(ctx context.Context, input *ProfileInput) (*entity.CustomizationProfile, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}

	count, err := s.profileRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	profile := &entity.CustomizationProfile{
		Name:      strings.TrimSpace(input.Name),
		IsDefault: count == 0 || (input.IsDefault != nil && *input.IsDefault),
		Profile:   input.Profile,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile replaces the parameters of a profile. The default flag can
// be moved to this profile but not cleared from it.
func (s *CustomizationService) UpdateProfile(ctx context.Context, id uuid.UUID, input *ProfileInput) (*entity.CustomizationProfile, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsDefault != nil {
		if profile.IsDefault && !*input.IsDefault {
			return nil, apperror.NewConflictError("Choose another default profile before unsetting this one")
		}
		profile.IsDefault = profile.IsDefault || *input.IsDefault
	}
	profile.Name = strings.TrimSpace(input.Name)
	profile.Profile = input.Profile

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile deletes a profile. The default profile cannot be deleted.
func (s *CustomizationService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if profile.IsDefault {
		return apperror.NewConflictError("The default profile cannot be deleted")
	}
	return s.profileRepo.Delete(ctx, id)
}

// SetDefault makes id the only default profile
func (s *CustomizationService) SetDefault(ctx context.Context, id uuid.UUID) (*entity.CustomizationProfile, error) {
	err := s.profileRepo.SetDefault(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Customization profile")
	}
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// Resolve returns the render parameters for id, or for the default profile
// when id is nil or unknown. Store failures are logged and the built-in
// defaults are used, so a render never fails for lack of a profile.
func (s *CustomizationService) Resolve(ctx context.Context, id *uuid.UUID) *document.Profile {
	if id != nil && *id != uuid.Nil {
		profile, err := s.profileRepo.GetByID(ctx, *id)
		switch {
		case err != nil:
			s.log.Warn("failed to load customization profile, using default",
				zap.String("profile_id", id.String()), zap.Error(err))
		case profile != nil:
			return profile.Resolved()
		}
	}

	profile, err := s.profileRepo.GetDefault(ctx)
	if err != nil {
		s.log.Warn("failed to load default customization profile, using built-in values", zap.Error(err))
		return document.DefaultProfile()
	}
	return profile.Resolved()
}
