package repositories

import (
	"github.com/shashiranjanraj/cozyloom/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlanketRepository handles database operations for Blanket.
// The handle is injected at construction; WithTx rebinds the repository to
// a transaction so multi-step operations stay atomic.
type BlanketRepository struct {
	db *gorm.DB
}

func NewBlanketRepository(db *gorm.DB) *BlanketRepository {
	return &BlanketRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *BlanketRepository) WithTx(tx *gorm.DB) *BlanketRepository {
	return &BlanketRepository{db: tx}
}

// All returns every blanket model.
func (r *BlanketRepository) All() ([]models.Blanket, error) {
	var blankets []models.Blanket
	err := r.db.Find(&blankets).Error
	return blankets, err
}

// FindByID looks up a blanket by primary key.
// Returns gorm.ErrRecordNotFound when absent.
func (r *BlanketRepository) FindByID(id uint) (models.Blanket, error) {
	var blanket models.Blanket
	err := r.db.First(&blanket, id).Error
	return blanket, err
}

// FindByIDForUpdate looks up a blanket under a row-level write lock.
// Only meaningful inside a transaction; concurrent stock mutations against
// the same blanket serialize on this lock. SQLite has no SELECT FOR UPDATE
// and serializes writers on the whole database, so the clause is skipped
// there.
func (r *BlanketRepository) FindByIDForUpdate(id uint) (models.Blanket, error) {
	q := r.db
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var blanket models.Blanket
	err := q.First(&blanket, id).Error
	return blanket, err
}

// NameTaken reports whether another blanket already uses model name,
// excluding excludeID (pass 0 on create).
func (r *BlanketRepository) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Blanket{}).Where("model_name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Create persists a new blanket record.
func (r *BlanketRepository) Create(b *models.Blanket) error {
	return r.db.Create(b).Error
}

// Save persists changes to an existing blanket.
func (r *BlanketRepository) Save(b *models.Blanket) error {
	return r.db.Save(b).Error
}

// Delete removes a blanket by id and returns the number of rows removed.
func (r *BlanketRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Blanket{}, id)
	return res.RowsAffected, res.Error
}
