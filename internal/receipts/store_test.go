package receipts

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store := NewStore(gdb)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestHasForDelivery(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	has, err := store.HasForDelivery(ctx, 7)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Attach(ctx, &Receipt{DeliveryID: 7, CompanyID: 1, FileKey: "r/7.jpg"}))

	has, err = store.HasForDelivery(ctx, 7)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRemoveForDeliveryClearsExistenceCheck(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Attach(ctx, &Receipt{DeliveryID: 8, CompanyID: 1, FileKey: "r/8a.jpg"}))
	require.NoError(t, store.Attach(ctx, &Receipt{DeliveryID: 8, CompanyID: 1, FileKey: "r/8b.jpg"}))

	require.NoError(t, store.RemoveForDelivery(ctx, store.db, 8))

	has, err := store.HasForDelivery(ctx, 8)
	require.NoError(t, err)
	assert.False(t, has)
}
