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

// VehicleService manages the vehicle catalogue
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// VehicleInput carries the writable vehicle fields. Nil pointers leave the
// stored value unchanged on update.
type VehicleInput struct {
	Make           *string
	Model          *string
	Year           *int
	VIN            *string
	ExteriorColor  *string
	InteriorColor  *string
	Specifications *string
	BasePrice      *float64
	IsActive       *bool
}

func (in *VehicleInput) apply(v *entity.Vehicle) {
	if in.Make != nil {
		v.Make = strings.TrimSpace(*in.Make)
	}
	if in.Model != nil {
		v.Model = strings.TrimSpace(*in.Model)
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.VIN != nil {
		v.VIN = trimmed(in.VIN)
	}
	if in.ExteriorColor != nil {
		v.ExteriorColor = trimmed(in.ExteriorColor)
	}
	if in.InteriorColor != nil {
		v.InteriorColor = trimmed(in.InteriorColor)
	}
	if in.Specifications != nil {
		v.Specifications = trimmed(in.Specifications)
	}
	if in.BasePrice != nil {
		v.BasePrice = *in.BasePrice
	}
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
}

func validateVehicle(v *entity.Vehicle) error {
	var errs []apperror.FieldError
	if v.Make == "" {
		errs = append(errs, apperror.FieldError{Field: "make", Message: "is required"})
	}
	if v.Model == "" {
		errs = append(errs, apperror.FieldError{Field: "model", Message: "is required"})
	}
	if v.BasePrice < 0 {
		errs = append(errs, apperror.FieldError{Field: "base_price", Message: "must be at least 0"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// CreateVehicle adds a vehicle to the catalogue
func (s *VehicleService) CreateVehicle(ctx context.Context, input *VehicleInput) (*entity.Vehicle, error) {
	vehicle := &entity.Vehicle{IsActive: true}
	input.apply(vehicle)
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// ListVehicles lists vehicles matching search on make, model or VIN
func (s *VehicleService) ListVehicles(ctx context.Context, filter *repository.ListFilter) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// UpdateVehicle updates a vehicle. Existing quotations keep their prices.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id uuid.UUID, input *VehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(vehicle)
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle deletes a vehicle
func (s *VehicleService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, id)
}
