package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/internal/testutil"
	"github.com/sangkips/autoquote-api/pkg/pagination"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *utils.JWTManager) {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	svc := NewAuthService(infraRepo.NewUserRepository(testutil.NewDB(t)), jwtManager, nil)
	return svc, jwtManager
}

func createStaff(t *testing.T, svc *AuthService, email string, role enum.UserRole) uuid.UUID {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "s3cret-pass",
		Role:      role,
	})
	require.NoError(t, err)
	return user.ID
}

func TestAuthService_Login(t *testing.T) {
	svc, jwtManager := newAuthService(t)
	ctx := context.Background()
	id := createStaff(t, svc, " Sales@Example.com ", "")

	out, err := svc.Login(ctx, &LoginInput{Email: "SALES@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, id, out.User.ID)
	assert.Equal(t, enum.UserRoleSales, out.User.Role)
	assert.Equal(t, int64(900), out.ExpiresIn)
	require.NotNil(t, out.User.LastLoginAt)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "sales", claims.Role)

	_, err = jwtManager.ValidateAccessToken(out.RefreshToken)
	assert.Error(t, err, "a refresh token is not an access token")

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "nope"})
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
		requireStatus(t, err, http.StatusUnauthorized)
	})
}

func TestAuthService_DisabledAccount(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	admin := createStaff(t, svc, "admin@example.com", enum.UserRoleAdmin)
	sales := createStaff(t, svc, "sales@example.com", enum.UserRoleSales)

	login, err := svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.SetUserActive(ctx, admin, admin, false)
	requireStatus(t, err, http.StatusBadRequest)

	user, err := svc.SetUserActive(ctx, admin, sales, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "s3cret-pass"})
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.SetUserActive(ctx, admin, uuid.New(), true)
	requireStatus(t, err, http.StatusNotFound)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	id := createStaff(t, svc, "sales@example.com", enum.UserRoleSales)

	login, err := svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	out, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id, out.User.ID)
	assert.NotEmpty(t, out.AccessToken)

	_, err = svc.RefreshToken(ctx, login.AccessToken)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.RefreshToken(ctx, "garbage")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestAuthService_CreateUser(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	createStaff(t, svc, "sales@example.com", enum.UserRoleSales)

	_, err := svc.CreateUser(ctx, &CreateUserInput{Email: "SALES@example.com", Password: "another-pass"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Email: "x@example.com", Password: "another-pass", Role: "owner"})
	requireStatus(t, err, http.StatusBadRequest)

	createStaff(t, svc, "admin@example.com", enum.UserRoleAdmin)
	page, err := svc.ListUsers(ctx, &pagination.PaginationParams{Page: 1, PerPage: 10}, "admin")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "admin@example.com", page.Items[0].Email)
	assert.NotEqual(t, "s3cret-pass", page.Items[0].Password)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	id := createStaff(t, svc, "sales@example.com", enum.UserRoleSales)

	err := svc.ChangePassword(ctx, &ChangePasswordInput{UserID: id, CurrentPassword: "wrong", NewPassword: "n3w-password"})
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          id,
		CurrentPassword: "s3cret-pass",
		NewPassword:     "n3w-password",
	}))

	_, err = svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "s3cret-pass"})
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = svc.Login(ctx, &LoginInput{Email: "sales@example.com", Password: "n3w-password"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{UserID: uuid.New(), CurrentPassword: "x", NewPassword: "y"})
	requireStatus(t, err, http.StatusNotFound)
}
