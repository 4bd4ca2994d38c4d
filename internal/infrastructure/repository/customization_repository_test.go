package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countDefaults(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.CustomizationProfile{}).Where("is_default = ?", true).Count(&n).Error)
	return n
}

func TestCustomizationProfileRepository_SingleDefault(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewCustomizationProfileRepository(db)

	first := &entity.CustomizationProfile{Name: "أساسي", IsDefault: true}
	first.HeaderFontSize = 20
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.CustomizationProfile{Name: "Compact", IsDefault: true}
	require.NoError(t, repo.Create(ctx, second))
	assert.EqualValues(t, 1, countDefaults(t, db))

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	require.NoError(t, repo.SetDefault(ctx, first.ID))
	assert.EqualValues(t, 1, countDefaults(t, db))

	def, err = repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, def.ID)
	assert.Equal(t, 20.0, def.HeaderFontSize)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsDefault, "default is listed first")
}

func TestCustomizationProfileRepository_SetDefaultUnknown(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewCustomizationProfileRepository(db)

	p := &entity.CustomizationProfile{Name: "only", IsDefault: true}
	require.NoError(t, repo.Create(ctx, p))

	err := repo.SetDefault(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.EqualValues(t, 1, countDefaults(t, db), "a failed switch keeps the old default")
}

func TestCustomizationProfileRepository_GetDefaultEmpty(t *testing.T) {
	repo := NewCustomizationProfileRepository(testutil.NewDB(t))

	def, err := repo.GetDefault(context.Background())
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestCustomizationProfileRepository_IndexRejectsSecondDefault(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewCustomizationProfileRepository(db)

	first := &entity.CustomizationProfile{Name: "first", IsDefault: true}
	require.NoError(t, repo.Create(ctx, first))

	// A writer that skips the repository cannot add a second default.
	rogue := &entity.CustomizationProfile{Name: "rogue", IsDefault: true}
	assert.Error(t, db.Create(rogue).Error)
	assert.EqualValues(t, 1, countDefaults(t, db))

	// A deleted default does not block a new one.
	require.NoError(t, db.Delete(first).Error)
	second := &entity.CustomizationProfile{Name: "second", IsDefault: true}
	require.NoError(t, db.Create(second).Error)
	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestCustomizationProfileRepository_ConcurrentSetDefault(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewCustomizationProfileRepository(db)

	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c", "d"} {
		p := &entity.CustomizationProfile{Name: name, IsDefault: name == "a"}
		require.NoError(t, repo.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = repo.SetDefault(ctx, id)
		}(id)
	}
	wg.Wait()

	assert.EqualValues(t, 1, countDefaults(t, db))
}
