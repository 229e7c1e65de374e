package repositories

import (
	"github.com/shashiranjanraj/cozyloom/app/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for DistributorOrder.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// All returns orders newest-first, optionally restricted to one status.
func (r *OrderRepository) All(status models.OrderStatus) ([]models.DistributorOrder, error) {
	var orders []models.DistributorOrder
	q := r.db.Order("order_date DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

// FindByID looks up an order by primary key.
// Returns gorm.ErrRecordNotFound when absent.
func (r *OrderRepository) FindByID(id uint) (models.DistributorOrder, error) {
	var order models.DistributorOrder
	err := r.db.First(&order, id).Error
	return order, err
}

// Create persists a new order record.
func (r *OrderRepository) Create(o *models.DistributorOrder) error {
	return r.db.Create(o).Error
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(o *models.DistributorOrder) error {
	return r.db.Save(o).Error
}
