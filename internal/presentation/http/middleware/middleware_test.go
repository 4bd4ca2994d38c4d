package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/config"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/internal/testutil"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(userID uuid.UUID, role enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
}

func serve(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Minute, time.Hour)
	userID := uuid.New()
	access, err := jwtManager.GenerateAccessToken(userID, "a@b.co", "admin")
	require.NoError(t, err)
	refresh, err := jwtManager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtManager), func(c *gin.Context) {
		id, _ := c.Get(ContextUserID)
		role, _ := c.Get(ContextUserRole)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
		{"lowercase scheme", "bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := serve(r, http.MethodGet, "/me", "", headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
				assert.Contains(t, w.Body.String(), `"role":"admin"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", withUser(uuid.New(), enum.UserRoleSales), RequireRole(enum.UserRoleAdmin), ok)
	r.GET("/either", withUser(uuid.New(), enum.UserRoleSales), RequireRole(enum.UserRoleAdmin, enum.UserRoleSales), ok)
	r.GET("/anonymous", RequireRole(enum.UserRoleAdmin), ok)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/either", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/anonymous", "", nil).Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2, EntryTTL: time.Minute})
	alice, bob := uuid.New(), uuid.New()

	r := gin.New()
	r.GET("/alice", withUser(alice, enum.UserRoleSales), rl.Middleware(), ok)
	r.GET("/bob", withUser(bob, enum.UserRoleSales), rl.Middleware(), ok)
	r.GET("/anon", rl.Middleware(), ok)

	first := serve(r, http.MethodGet, "/alice", "", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/alice", "", nil).Code)
	limited := serve(r, http.MethodGet, "/alice", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/bob", "", nil).Code, "limits are per user")
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/anon", "", nil).Code)
	assert.Equal(t, 3, rl.Size())

	rl.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	rl.cleanup()
	assert.Equal(t, 0, rl.Size())
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(60, time.Minute)
	assert.InDelta(t, 1.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 60, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFor(0, time.Minute))
}

func TestIdempotency(t *testing.T) {
	repo := infraRepo.NewIdempotencyRepository(testutil.NewDB(t))
	userID := uuid.New()
	var calls atomic.Int32

	r := gin.New()
	r.Use(withUser(userID, enum.UserRoleSales), Idempotency(IdempotencyConfig{Repo: repo}))
	r.POST("/quotations", func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(http.StatusCreated, gin.H{"call": n})
	})
	r.POST("/fail", func(c *gin.Context) {
		calls.Add(1)
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
	})
	r.GET("/quotations", func(c *gin.Context) {
		calls.Add(1)
		c.Status(http.StatusOK)
	})

	key := map[string]string{IdempotencyKeyHeader: "abc-123"}

	first := serve(r, http.MethodPost, "/quotations", `{"a":1}`, key)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := serve(r, http.MethodPost, "/quotations", `{"a":1}`, key)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, int32(1), calls.Load())

	conflict := serve(r, http.MethodPost, "/quotations", `{"a":2}`, key)
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)
	assert.Equal(t, int32(1), calls.Load())

	fresh := serve(r, http.MethodPost, "/quotations", `{"a":1}`, map[string]string{IdempotencyKeyHeader: "other"})
	assert.Equal(t, http.StatusCreated, fresh.Code)
	assert.Equal(t, int32(2), calls.Load())

	failKey := map[string]string{IdempotencyKeyHeader: "fail-1"}
	serve(r, http.MethodPost, "/fail", `{}`, failKey)
	serve(r, http.MethodPost, "/fail", `{}`, failKey)
	assert.Equal(t, int32(4), calls.Load(), "failed responses are not stored")

	serve(r, http.MethodGet, "/quotations", "", key)
	assert.Equal(t, int32(5), calls.Load(), "reads ignore the key")

	long := map[string]string{IdempotencyKeyHeader: strings.Repeat("k", maxIdempotencyKeyLength+1)}
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/quotations", `{}`, long).Code)
}

func TestIdempotencyExpiredKeyIsReplaced(t *testing.T) {
	repo := infraRepo.NewIdempotencyRepository(testutil.NewDB(t))
	userID := uuid.New()
	var calls atomic.Int32

	r := gin.New()
	r.Use(withUser(userID, enum.UserRoleSales), Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Millisecond}))
	r.POST("/quotations", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"call": calls.Add(1)})
	})

	key := map[string]string{IdempotencyKeyHeader: "abc"}
	serve(r, http.MethodPost, "/quotations", `{}`, key)
	time.Sleep(5 * time.Millisecond)
	serve(r, http.MethodPost, "/quotations", `{}`, key)
	assert.Equal(t, int32(2), calls.Load())

	time.Sleep(5 * time.Millisecond)
	stored, err := repo.GetByKey(context.Background(), "abc", userID)
	require.NoError(t, err)
	assert.Nil(t, stored, "the replacement expired as well")

	removed, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()))
	r.GET("/ping", ok)

	w := serve(r, http.MethodGet, "/ping", "", map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/ping", "", nil)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()), RecoveryMiddleware(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", "", map[string]string{RequestIDHeader: "req-7"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool `json:"success"`
		Meta    struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-7", body.Meta.RequestID)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedHeaders: []string{"authorization"},
	}))
	r.GET("/ping", ok)

	w := serve(r, http.MethodOptions, "/ping", "", map[string]string{
		"Origin":                         "https://app.example.com",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Idempotency-Key",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, "idempotency-key")
	assert.Equal(t, 1, strings.Count(allowed, "authorization"))

	w = serve(r, http.MethodGet, "/ping", "", map[string]string{"Origin": "https://app.example.com"})
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")

	w = serve(r, http.MethodGet, "/ping", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
