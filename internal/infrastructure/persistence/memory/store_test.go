package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/infrastructure/persistence/memory"
	"github.com/tabdeck/tabdeck/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sampleData() *entity.StoredTabData {
	return &entity.StoredTabData{
		Version: entity.StoredDataVersion,
		Tabs: []entity.Tab{
			{ID: "t1", Title: "One", IsActive: true, Order: 0, CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
			{ID: "t2", Title: "Two", Order: 1, GroupID: "g1", CreatedAt: time.Date(2026, 8, 1, 12, 5, 0, 0, time.UTC)},
		},
		Groups: []entity.Group{
			{ID: "g1", Title: "Work", Color: "#ff0000", Order: 0},
		},
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store := memory.NewStore()

	data, err := store.Load(testCtx())
	require.NoError(t, err)
	assert.Equal(t, entity.StoredDataVersion, data.Version)
	assert.Empty(t, data.Tabs)
	assert.Empty(t, data.Groups)
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	ctx := testCtx()
	store := memory.NewStore()

	require.NoError(t, store.Save(ctx, sampleData()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleData(), got)
}

func TestStore_LoadReturnsIndependentCopies(t *testing.T) {
	ctx := testCtx()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, sampleData()))

	first, err := store.Load(ctx)
	require.NoError(t, err)
	first.Tabs[0].Title = "mutated"

	second, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "One", second.Tabs[0].Title)
}

func TestStore_Clear(t *testing.T) {
	ctx := testCtx()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, sampleData()))

	require.NoError(t, store.Clear(ctx))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Tabs)
	assert.Empty(t, data.Groups)
}
