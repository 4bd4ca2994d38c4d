package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/config"
	"github.com/sangkips/autoquote-api/internal/infrastructure/database"
	"github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/internal/observability"
	"github.com/sangkips/autoquote-api/internal/presentation/http/handler"
	"github.com/sangkips/autoquote-api/internal/presentation/http/middleware"
	"github.com/sangkips/autoquote-api/internal/testutil"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/sangkips/autoquote-api/pkg/email"
	"github.com/sangkips/autoquote-api/pkg/report"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	ready  error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		App:   config.AppConfig{Name: "autoquote-api", Env: "test"},
		Admin: config.AdminConfig{Email: adminEmail, Password: adminPassword, FirstName: "Site", LastName: "Admin"},
	}
	require.NoError(t, database.SeedDefaultData(context.Background(), db, cfg.Admin, zap.NewNop()))

	defaults := service.QuotationDefaults{
		Currency: "ريال", MinorUnit: "هللة", VATRate: 15, ValidityDays: 15, ReferencePrefix: "QT",
	}
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, time.Hour)

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	salesRepRepo := repository.NewSalesRepRepository(db)
	termRepo := repository.NewTermConditionRepository(db)
	profileRepo := repository.NewCustomizationProfileRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)

	renderer, err := document.NewRenderer(document.Options{})
	require.NoError(t, err)

	authService := service.NewAuthService(userRepo, jwtManager, nil)
	customizationService := service.NewCustomizationService(profileRepo, nil)
	quotationService := service.NewQuotationService(
		quotationRepo, companyRepo, customerRepo, vehicleRepo, salesRepRepo, defaults, nil,
	)
	documentService := service.NewDocumentService(service.DocumentServiceConfig{
		Quotations:    quotationService,
		QuotationRepo: quotationRepo,
		TermRepo:      termRepo,
		Profiles:      customizationService,
		Renderer:      renderer,
		Register:      report.NewRegisterReport(document.Fonts{}, renderer.Formatter()),
		Mailer:        email.NewEmailService(email.EmailConfig{}),
	})

	s := &testServer{t: t}
	s.router = Setup(&Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(authService),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Company:   handler.NewCompanyHandler(service.NewCompanyService(companyRepo)),
		Vehicle:   handler.NewVehicleHandler(service.NewVehicleService(vehicleRepo)),
		SalesRep:  handler.NewSalesRepHandler(service.NewSalesRepService(salesRepRepo)),
		Term:      handler.NewTermHandler(service.NewTermService(termRepo)),
		Profile:   handler.NewProfileHandler(customizationService),
		Quotation: handler.NewQuotationHandler(quotationService, documentService),
		Pricing:   handler.NewPricingHandler(service.NewPricingService(defaults)),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		RateLimiter:     middleware.NewRateLimiter(middleware.RateLimiterConfig{RequestsPerSecond: 1000, BurstSize: 1000}),
		Metrics:         observability.NewMetrics(observability.Config{ServiceName: "autoquote-api"}),
		Ready:           func() error { return s.ready },
	})
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, w, &tokens)
	return tokens.AccessToken
}

func (s *testServer) salesToken(adminToken string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"first_name": "Sara", "last_name": "Ali", "email": "sales@example.com", "password": "sales-password",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return s.login("sales@example.com", "sales-password")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	s.ready = errors.New("database down")
	w = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "autoquote_http_requests_total")
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/quotations", "", nil).Code)

	admin := s.login(adminEmail, adminPassword)
	w = s.do(http.MethodGet, "/api/v1/profile", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decode(t, w, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestCatalogueWritesNeedAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	sales := s.salesToken(admin)

	vehicle := gin.H{"make": "Toyota", "model": "Land Cruiser", "year": 2024, "base_price": 350000}
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/vehicles", sales, vehicle).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users", sales, nil).Code)

	w := s.do(http.MethodPost, "/api/v1/vehicles", admin, vehicle)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/vehicles?search=land", sales, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Land Cruiser")

	w = s.do(http.MethodGet, "/api/v1/terms", sales, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), database.DefaultTerms[0])
}

func TestPricingPreview(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/pricing/preview", admin, gin.H{"base_price": 100000, "plate_price": 500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var preview struct {
		Rounded struct {
			Total float64 `json:"total"`
		} `json:"rounded"`
		AmountInWords string `json:"amount_in_words"`
	}
	decode(t, w, &preview)
	assert.InDelta(t, 115500, preview.Rounded.Total, 0.001)
	assert.Equal(t, "مائة وخمسة عشر ألف وخمسمائة ريال", preview.AmountInWords)

	w = s.do(http.MethodPost, "/api/v1/pricing/preview", admin, gin.H{"base_price": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "base_price", env.Errors[0].Field)
}

func TestQuotationLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	sales := s.salesToken(admin)

	w := s.do(http.MethodPost, "/api/v1/customers", sales, gin.H{"name": "محمد العتيبي", "phone": "0500000000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer struct {
		ID string `json:"id"`
	}
	decode(t, w, &customer)

	w = s.do(http.MethodPost, "/api/v1/quotations", sales, gin.H{
		"customer_id": customer.ID,
		"base_price":  100000,
		"plate_price": 500,
		"issue_date":  "2024-05-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var quotation struct {
		ID            string  `json:"id"`
		Reference     string  `json:"reference"`
		Status        string  `json:"status"`
		TotalAmount   float64 `json:"total_amount"`
		AmountInWords string  `json:"amount_in_words"`
		CustomerName  string  `json:"customer_name"`
		ValidUntil    string  `json:"valid_until"`
	}
	decode(t, w, &quotation)
	assert.Equal(t, "QT-000001", quotation.Reference)
	assert.Equal(t, "Draft", quotation.Status)
	assert.InDelta(t, 115500, quotation.TotalAmount, 0.001)
	assert.Equal(t, "محمد العتيبي", quotation.CustomerName)
	assert.Contains(t, quotation.ValidUntil, "2024-06-04")

	base := "/api/v1/quotations/" + quotation.ID

	w = s.do(http.MethodPost, "/api/v1/quotations", sales, gin.H{"base_price": 1, "issue_date": "20/05/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, base+"/pdf", sales, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = s.do(http.MethodGet, base+"/pdf?inline=true", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")

	w = s.do(http.MethodGet, "/api/v1/quotations/register.pdf", sales, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = s.do(http.MethodPost, base+"/email", sales, gin.H{"to": "buyer@example.com"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodPatch, base+"/status", sales, gin.H{"status": "lost"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPatch, base+"/status", sales, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"Accepted"`)

	w = s.do(http.MethodPatch, base+"/status", sales, gin.H{"status": "draft"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/quotations?status=accepted", sales, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "QT-000001")

	w = s.do(http.MethodGet, "/api/v1/quotations/not-a-uuid", sales, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodGet, "/api/v1/customization-profiles/resolved", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resolved document.Profile
	decode(t, w, &resolved)
	assert.Equal(t, *document.DefaultProfile(), resolved)

	w = s.do(http.MethodPost, "/api/v1/customization-profiles", admin, gin.H{"name": "Large", "header_font_size": 999})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
