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

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID     uuid.UUID
	Name       string
	NationalID *string
	Phone      *string
	Email      *string
	Address    *string
}

// CreateCustomer creates a new customer. National IDs are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	nationalID := trimmed(input.NationalID)
	if nationalID != nil {
		existing, err := s.customerRepo.GetByNationalID(ctx, *nationalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this national ID already exists")
		}
	}

	customer := &entity.Customer{
		UserID:     input.UserID,
		Name:       strings.TrimSpace(input.Name),
		NationalID: nationalID,
		Phone:      trimmed(input.Phone),
		Email:      trimmed(input.Email),
		Address:    trimmed(input.Address),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching search on name, national ID, phone or email
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	UserID     uuid.UUID
	ID         uuid.UUID
	IsAdmin    bool
	Name       *string
	NationalID *string
	Phone      *string
	Email      *string
	Address    *string
}

// UpdateCustomer updates a customer. Sales users may only change customers
// they created.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if !input.IsAdmin && customer.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.NationalID != nil {
		nationalID := trimmed(input.NationalID)
		if nationalID != nil {
			existing, err := s.customerRepo.GetByNationalID(ctx, *nationalID)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != customer.ID {
				return nil, apperror.NewConflictError("A customer with this national ID already exists")
			}
		}
		customer.NationalID = nationalID
	}
	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		customer.Phone = trimmed(input.Phone)
	}
	if input.Email != nil {
		customer.Email = trimmed(input.Email)
	}
	if input.Address != nil {
		customer.Address = trimmed(input.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer. Quotations keep their name snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if !isAdmin && customer.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.customerRepo.Delete(ctx, id)
}

// trimmed returns nil for nil or blank strings, otherwise the trimmed value.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
