package settings

import (
	"testing"

	"turbo/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.StripeConfig{},
		&models.ResendConfig{},
		&models.EditorConfig{},
		&models.CloudinaryConfig{},
	))
	return db
}

func TestLoadReturnsDefaultsWhenEmpty(t *testing.T) {
	store := NewStore(newTestDB(t))

	stripe, err := store.LoadStripe()
	require.NoError(t, err)
	assert.Zero(t, stripe.RowID(), "default instance must not be persisted")
	assert.False(t, stripe.IsActive)
	assert.Empty(t, stripe.SecretKey)

	editor, err := store.LoadEditor()
	require.NoError(t, err)
	assert.Zero(t, editor.RowID())
	assert.Equal(t, 500, editor.Height)

	cloud, err := store.LoadCloudinary()
	require.NoError(t, err)
	assert.Equal(t, "uploads", cloud.DefaultFolder)
	assert.True(t, cloud.AutoOptimize)

	// Loading defaults must not create rows.
	var count int64
	require.NoError(t, store.db.Model(&models.StripeConfig{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoadIsCachedUntilSave(t *testing.T) {
	store := NewStore(newTestDB(t))

	first, err := store.LoadResend()
	require.NoError(t, err)
	second, err := store.LoadResend()
	require.NoError(t, err)
	assert.Same(t, first, second, "second load must hit the cache")

	require.NoError(t, store.SaveResend(&models.ResendConfig{APIKey: "re_123", FromEmail: "a@b.com"}))

	third, err := store.LoadResend()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "re_123", third.APIKey)
}

func TestSaveNeverCreatesSecondRow(t *testing.T) {
	store := NewStore(newTestDB(t))

	require.NoError(t, store.SaveStripe(&models.StripeConfig{SecretKey: "sk_one"}))
	require.NoError(t, store.SaveStripe(&models.StripeConfig{SecretKey: "sk_two", IsActive: true}))
	require.NoError(t, store.SaveStripe(&models.StripeConfig{SecretKey: "sk_three"}))

	var count int64
	require.NoError(t, store.db.Model(&models.StripeConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	cfg, err := store.LoadStripe()
	require.NoError(t, err)
	assert.Equal(t, "sk_three", cfg.SecretKey)
	assert.False(t, cfg.IsActive)
}

func TestSavePreservesCreatedAt(t *testing.T) {
	store := NewStore(newTestDB(t))

	require.NoError(t, store.SaveResend(&models.ResendConfig{APIKey: "re_first"}))
	first, err := store.LoadResend()
	require.NoError(t, err)

	require.NoError(t, store.SaveResend(&models.ResendConfig{APIKey: "re_second"}))
	second, err := store.LoadResend()
	require.NoError(t, err)

	assert.Equal(t, first.RowID(), second.RowID())
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func TestMultipleRowsResolvedToLowestID(t *testing.T) {
	db := newTestDB(t)
	// Simulate direct database edits bypassing the store.
	require.NoError(t, db.Create(&models.EditorConfig{APIKey: "first", Height: 400}).Error)
	require.NoError(t, db.Create(&models.EditorConfig{APIKey: "second", Height: 600}).Error)

	store := NewStore(db)
	cfg, err := store.LoadEditor()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.APIKey)
	assert.Equal(t, 400, cfg.Height)

	// A save through the store targets the same lowest-id row.
	require.NoError(t, store.SaveEditor(&models.EditorConfig{APIKey: "third", Height: 700}))
	var rows []models.EditorConfig
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "third", rows[0].APIKey)
	assert.Equal(t, "second", rows[1].APIKey)
}

func TestResetDropsAllCachedInstances(t *testing.T) {
	store := NewStore(newTestDB(t))

	first, err := store.LoadStripe()
	require.NoError(t, err)
	store.Reset()
	second, err := store.LoadStripe()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestConfigTypesAreIndependent(t *testing.T) {
	store := NewStore(newTestDB(t))

	require.NoError(t, store.SaveStripe(&models.StripeConfig{SecretKey: "sk_x", IsActive: true}))
	require.NoError(t, store.SaveCloudinary(&models.CloudinaryConfig{CloudName: "demo", IsActive: true}))

	stripe, err := store.LoadStripe()
	require.NoError(t, err)
	cloud, err := store.LoadCloudinary()
	require.NoError(t, err)
	assert.Equal(t, "sk_x", stripe.SecretKey)
	assert.Equal(t, "demo", cloud.CloudName)

	// Resend was never saved and stays a default.
	resend, err := store.LoadResend()
	require.NoError(t, err)
	assert.Zero(t, resend.RowID())
}
