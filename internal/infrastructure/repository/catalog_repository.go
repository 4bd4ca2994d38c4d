package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	domainRepo "github.com/sangkips/autoquote-api/internal/domain/repository"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

// Catalogue creates select every column so an explicit is_active=false is
// written instead of the column default.
func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Select("*").Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) GetPrimary(ctx context.Context) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Company{}, "id = ?", id).Error
}

func (r *companyRepository) List(ctx context.Context, filter *domainRepo.ListFilter) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{}).
		Scopes(Search(filter.Search, "name", "name_english", "cr_number", "vat_number"), ActiveOnly(filter.ActiveOnly))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(filter.Pagination)).
		Order("name ASC").
		Find(&companies).Error

	return companies, total, err
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Select("*").Create(vehicle).Error
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Vehicle{}, "id = ?", id).Error
}

func (r *vehicleRepository) List(ctx context.Context, filter *domainRepo.ListFilter) ([]entity.Vehicle, int64, error) {
	var vehicles []entity.Vehicle
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Vehicle{}).
		Scopes(Search(filter.Search, "make", "model", "vin"), ActiveOnly(filter.ActiveOnly))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(filter.Pagination)).
		Order("make ASC, model ASC, year DESC").
		Find(&vehicles).Error

	return vehicles, total, err
}

type salesRepRepository struct {
	db *gorm.DB
}

// NewSalesRepRepository creates a new sales representative repository
func NewSalesRepRepository(db *gorm.DB) domainRepo.SalesRepRepository {
	return &salesRepRepository{db: db}
}

func (r *salesRepRepository) Create(ctx context.Context, rep *entity.SalesRepresentative) error {
	return r.db.WithContext(ctx).Select("*").Create(rep).Error
}

func (r *salesRepRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesRepresentative, error) {
	var rep entity.SalesRepresentative
	err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *salesRepRepository) Update(ctx context.Context, rep *entity.SalesRepresentative) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *salesRepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalesRepresentative{}, "id = ?", id).Error
}

func (r *salesRepRepository) List(ctx context.Context, filter *domainRepo.ListFilter) ([]entity.SalesRepresentative, int64, error) {
	var reps []entity.SalesRepresentative
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesRepresentative{}).
		Scopes(Search(filter.Search, "name", "phone", "email"), ActiveOnly(filter.ActiveOnly))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(filter.Pagination)).
		Order("name ASC").
		Find(&reps).Error

	return reps, total, err
}

type termConditionRepository struct {
	db *gorm.DB
}

// NewTermConditionRepository creates a new terms and conditions repository
func NewTermConditionRepository(db *gorm.DB) domainRepo.TermConditionRepository {
	return &termConditionRepository{db: db}
}

func (r *termConditionRepository) Create(ctx context.Context, term *entity.TermCondition) error {
	return r.db.WithContext(ctx).Select("*").Create(term).Error
}

func (r *termConditionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TermCondition, error) {
	var term entity.TermCondition
	err := r.db.WithContext(ctx).First(&term, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &term, err
}

func (r *termConditionRepository) Update(ctx context.Context, term *entity.TermCondition) error {
	return r.db.WithContext(ctx).Save(term).Error
}

func (r *termConditionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TermCondition{}, "id = ?", id).Error
}

func (r *termConditionRepository) List(ctx context.Context) ([]entity.TermCondition, error) {
	return r.list(ctx, false)
}

func (r *termConditionRepository) ListActive(ctx context.Context) ([]entity.TermCondition, error) {
	return r.list(ctx, true)
}

func (r *termConditionRepository) list(ctx context.Context, activeOnly bool) ([]entity.TermCondition, error) {
	var terms []entity.TermCondition
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly(activeOnly)).
		Order("display_order ASC, created_at ASC").
		Find(&terms).Error
	return terms, err
}

func (r *termConditionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.TermCondition{}).Count(&count).Error
	return count, err
}
