package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/autoquote-api/internal/domain/entity"
	infraRepo "github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/internal/testutil"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDefaults = QuotationDefaults{
	Currency:        "ريال",
	MinorUnit:       "هللة",
	VATRate:         15,
	ValidityDays:    15,
	ReferencePrefix: "QT",
}

type fixture struct {
	db         *gorm.DB
	quotations *QuotationService
	profiles   *CustomizationService
	company    *entity.Company
	customer   *entity.Customer
	vehicle    *entity.Vehicle
	rep        *entity.SalesRepresentative
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)

	companyRepo := infraRepo.NewCompanyRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	vehicleRepo := infraRepo.NewVehicleRepository(db)
	repRepo := infraRepo.NewSalesRepRepository(db)

	f := &fixture{
		db: db,
		quotations: NewQuotationService(
			infraRepo.NewQuotationRepository(db), companyRepo, customerRepo, vehicleRepo, repRepo, testDefaults, nil,
		),
		profiles: NewCustomizationService(infraRepo.NewCustomizationProfileRepository(db), nil),
		company:  &entity.Company{Name: "معرض الرياض للسيارات", IsActive: true},
		customer: &entity.Customer{Name: "عبدالله القحطاني"},
		vehicle:  &entity.Vehicle{Make: "Toyota", Model: "Camry", Year: 2024, BasePrice: 100000, IsActive: true},
		rep:      &entity.SalesRepresentative{Name: "سعد", IsActive: true},
	}
	require.NoError(t, companyRepo.Create(ctx, f.company))
	require.NoError(t, customerRepo.Create(ctx, f.customer))
	require.NoError(t, vehicleRepo.Create(ctx, f.vehicle))
	require.NoError(t, repRepo.Create(ctx, f.rep))

	fixed := time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)
	f.quotations.now = func() time.Time { return fixed }
	return f
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected an AppError, got %v", err)
	assert.Equal(t, code, apperror.GetAppError(err).Code)
}
