package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	domainRepo "github.com/sangkips/autoquote-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customizationProfileRepository struct {
	db *gorm.DB
}

// NewCustomizationProfileRepository creates a new customization profile repository
func NewCustomizationProfileRepository(db *gorm.DB) domainRepo.CustomizationProfileRepository {
	return &customizationProfileRepository{db: db}
}

func (r *customizationProfileRepository) Create(ctx context.Context, profile *entity.CustomizationProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile.IsDefault {
			if err := lockDefault(tx); err != nil {
				return err
			}
			if err := clearDefault(tx, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(profile).Error
	})
}

func (r *customizationProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomizationProfile, error) {
	var profile entity.CustomizationProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *customizationProfileRepository) GetDefault(ctx context.Context) (*entity.CustomizationProfile, error) {
	var profile entity.CustomizationProfile
	err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("updated_at DESC").
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *customizationProfileRepository) Update(ctx context.Context, profile *entity.CustomizationProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile.IsDefault {
			if err := clearDefault(tx, profile.ID); err != nil {
				return err
			}
		}
		return tx.Save(profile).Error
	})
}

func (r *customizationProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CustomizationProfile{}, "id = ?", id).Error
}

func (r *customizationProfileRepository) List(ctx context.Context) ([]entity.CustomizationProfile, error) {
	var profiles []entity.CustomizationProfile
	err := r.db.WithContext(ctx).
		Order("is_default DESC, name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *customizationProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.CustomizationProfile{}).Count(&count).Error
	return count, err
}

func (r *customizationProfileRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDefault(tx); err != nil {
			return err
		}
		if err := clearDefault(tx, id); err != nil {
			return err
		}
		res := tx.Model(&entity.CustomizationProfile{}).
			Where("id = ?", id).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// lockDefault row-locks the current default so concurrent switches run one
// after the other. The partial unique index rejects whatever still races.
func lockDefault(tx *gorm.DB) error {
	var current []entity.CustomizationProfile
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("is_default = ?", true).
		Find(&current).Error
}

// clearDefault unsets is_default on every profile except keep.
func clearDefault(tx *gorm.DB, keep uuid.UUID) error {
	return tx.Model(&entity.CustomizationProfile{}).
		Where("is_default = ? AND id <> ?", true, keep).
		Update("is_default", false).Error
}
