package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
)

// CustomizationProfileRepository stores document layout profiles. Writes
// that set IsDefault clear the flag on every other profile in the same
// transaction.
type CustomizationProfileRepository interface {
	Create(ctx context.Context, profile *entity.CustomizationProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomizationProfile, error)
	GetDefault(ctx context.Context) (*entity.CustomizationProfile, error)
	Update(ctx context.Context, profile *entity.CustomizationProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.CustomizationProfile, error)
	Count(ctx context.Context) (int64, error)
	SetDefault(ctx context.Context, id uuid.UUID) error
}
