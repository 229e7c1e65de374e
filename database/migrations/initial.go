package migrations

import (
	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_blankets_table", &CreateBlanketsTable{})
	migration.Register("20260301000001_create_distributor_orders_table", &CreateDistributorOrdersTable{})
}

// -------- 0001: blankets --------

type CreateBlanketsTable struct{}

func (m *CreateBlanketsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Blanket{})
}

func (m *CreateBlanketsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("blankets")
}

// -------- 0002: distributor_orders --------

type CreateDistributorOrdersTable struct{}

func (m *CreateDistributorOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.DistributorOrder{})
}

func (m *CreateDistributorOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("distributor_orders")
}
