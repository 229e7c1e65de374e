package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/services"
)

var dbSeq atomic.Int64

// newTestDB opens a fresh in-memory SQLite database with the schema
// migrated. Each call gets its own database so tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Blanket{}, &models.DistributorOrder{}))
	return db
}

func newCatalog(t *testing.T) (*services.CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return services.NewCatalogService(db), db
}

func newLedger(t *testing.T) (*services.LedgerService, *services.CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)
	return services.NewLedgerService(db, catalog), catalog, db
}

// seedBlanket inserts a blanket directly and returns it.
func seedBlanket(t *testing.T, db *gorm.DB, name string, stock int) models.Blanket {
	t.Helper()
	b := models.Blanket{
		ModelName:          name,
		Material:           "wool",
		CurrentStock:       stock,
		ProductionCapacity: 100,
		UnitCost:           25.0,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// currentStock reads a blanket's stored stock straight from the database.
func currentStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var b models.Blanket
	require.NoError(t, db.First(&b, id).Error)
	return b.CurrentStock
}

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string   { return &v }
