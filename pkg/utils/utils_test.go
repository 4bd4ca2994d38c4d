package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "QT-000001", FormatReference("QT", 1))
	assert.Equal(t, "INV-001234", FormatReference("inv-", 1234))
	assert.Equal(t, "QT-000007", FormatReference("", 7))
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "acme-trading-qt-000001.pdf", DocumentFilename("Acme Trading", "QT-000001"))
	assert.Equal(t, "document.pdf", DocumentFilename("", ""))

	name := DocumentFilename("محمد العتيبي", "QT-000002")
	assert.Regexp(t, `^[a-z0-9-]+\.pdf$`, name)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	id := uuid.New()

	access, err := m.GenerateAccessToken(id, "a@b.c", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	refresh, err := m.GenerateRefreshToken(id)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err, "a refresh token is not an access token")
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err, "an access token is not a refresh token")
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "a@b.c", "sales")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Minute, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}
