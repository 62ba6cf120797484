package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmejia/opsledger-api/internal/models"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BookingType{}, &models.WorkOrderType{}, &models.JobType{}))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestEnsureDefaultCatalogsPopulatesEmptyTables(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, EnsureDefaultCatalogs(db))

	assert.Equal(t, int64(4), count(t, db, &models.BookingType{}))
	assert.Equal(t, int64(5), count(t, db, &models.WorkOrderType{}))
	assert.Equal(t, int64(3), count(t, db, &models.JobType{}))
}

func TestEnsureDefaultCatalogsIsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, EnsureDefaultCatalogs(db))
	require.NoError(t, EnsureDefaultCatalogs(db))

	assert.Equal(t, int64(4), count(t, db, &models.BookingType{}))
	assert.Equal(t, int64(5), count(t, db, &models.WorkOrderType{}))
	assert.Equal(t, int64(3), count(t, db, &models.JobType{}))
}

func TestEnsureDefaultCatalogsSkipsNonEmptyTables(t *testing.T) {
	db := newSeedTestDB(t)

	custom := &models.BookingType{Name: "Photo Shoot", BasePrice: 320}
	require.NoError(t, db.Create(custom).Error)

	require.NoError(t, EnsureDefaultCatalogs(db))

	// an operator-managed catalog is never touched
	assert.Equal(t, int64(1), count(t, db, &models.BookingType{}))
	// the other, still-empty catalogs get their defaults
	assert.Equal(t, int64(5), count(t, db, &models.WorkOrderType{}))
	assert.Equal(t, int64(3), count(t, db, &models.JobType{}))
}

func TestEnsureDefaultCatalogsNilDB(t *testing.T) {
	assert.Error(t, EnsureDefaultCatalogs(nil))
}
