package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomizationService_FirstProfileIsDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.profiles.CreateProfile(ctx, &ProfileInput{Name: "Classic"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := f.profiles.CreateProfile(ctx, &ProfileInput{Name: "Modern"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	_, err = f.profiles.SetDefault(ctx, second.ID)
	require.NoError(t, err)

	reloaded, err := f.profiles.GetProfile(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestCustomizationService_DefaultIsProtected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.profiles.CreateProfile(ctx, &ProfileInput{Name: "Classic"})
	require.NoError(t, err)

	requireStatus(t, f.profiles.DeleteProfile(ctx, p.ID), http.StatusConflict)

	off := false
	_, err = f.profiles.UpdateProfile(ctx, p.ID, &ProfileInput{Name: "Classic", IsDefault: &off})
	requireStatus(t, err, http.StatusConflict)

	_, err = f.profiles.SetDefault(ctx, uuid.New())
	requireStatus(t, err, http.StatusNotFound)
}

func TestCustomizationService_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.profiles.CreateProfile(ctx, &ProfileInput{Name: "  "})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = f.profiles.CreateProfile(ctx, &ProfileInput{
		Name:    "Loud",
		Profile: document.Profile{HeaderFontSize: 500, HeaderTextColor: "red"},
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	fields := map[string]bool{}
	for _, fe := range apperror.GetAppError(err).Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["header_font_size"])
	assert.True(t, fields["header_text_color"])
}

func TestCustomizationService_Resolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Equal(t, document.DefaultProfile(), f.profiles.Resolve(ctx, nil),
		"built-in values when nothing is stored")

	_, err := f.profiles.CreateProfile(ctx, &ProfileInput{
		Name:    "Default",
		Profile: document.Profile{HeaderFontSize: 30},
	})
	require.NoError(t, err)
	other, err := f.profiles.CreateProfile(ctx, &ProfileInput{
		Name:    "Other",
		Profile: document.Profile{HeaderFontSize: 12, HeaderBackgroundColor: "#000000"},
	})
	require.NoError(t, err)

	resolved := f.profiles.Resolve(ctx, nil)
	assert.Equal(t, 30.0, resolved.HeaderFontSize)
	assert.Equal(t, document.DefaultProfile().ContentFontSize, resolved.ContentFontSize,
		"unset values take the built-in default")

	resolved = f.profiles.Resolve(ctx, &other.ID)
	assert.Equal(t, 12.0, resolved.HeaderFontSize)
	assert.Equal(t, "#000000", resolved.HeaderBackgroundColor)

	unknown := uuid.New()
	resolved = f.profiles.Resolve(ctx, &unknown)
	assert.Equal(t, 30.0, resolved.HeaderFontSize, "an unknown profile falls back to the default")
}
