package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/repositories"
	"github.com/shashiranjanraj/cozyloom/config"
	"github.com/shashiranjanraj/cozyloom/pkg/apperr"
	"github.com/shashiranjanraj/cozyloom/pkg/cache"
	"github.com/shashiranjanraj/cozyloom/pkg/event"
	"github.com/shashiranjanraj/cozyloom/pkg/metrics"
	"github.com/shashiranjanraj/cozyloom/pkg/validate"
	"gorm.io/gorm"
)

const (
	blanketsCacheKey = "catalog:blankets"
	blanketsCacheTTL = time.Minute
)

// Stock adjustment actions accepted by AdjustStock.
const (
	StockActionAdd    = "add"
	StockActionRemove = "remove"
)

// CreateBlanketInput is the payload for adding a blanket model. Numeric
// required fields are pointers so "absent" and "zero" stay distinguishable.
type CreateBlanketInput struct {
	ModelName          string   `json:"model_name"          validate:"required"`
	Material           string   `json:"material"            validate:"required"`
	CurrentStock       *int     `json:"current_stock"       validate:"gte=0"`
	ProductionCapacity *int     `json:"production_capacity" validate:"required"`
	Description        string   `json:"description"`
	UnitCost           *float64 `json:"unit_cost"           validate:"required,gte=0"`
}

// UpdateBlanketInput is a partial update: only non-nil fields are applied.
// CurrentStock is deliberately absent — stock moves only through
// AdjustStock and the order flows.
type UpdateBlanketInput struct {
	ModelName          *string  `json:"model_name"`
	Material           *string  `json:"material"`
	ProductionCapacity *int     `json:"production_capacity"`
	Description        *string  `json:"description"`
	UnitCost           *float64 `json:"unit_cost"  validate:"gte=0"`
}

// AdjustStockInput is the payload for the manual inventory endpoint.
type AdjustStockInput struct {
	BlanketID uint   `json:"blanket_id" validate:"required"`
	Action    string `json:"action"     validate:"required,in=add,remove"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// CatalogService owns the blanket catalogue and is the single point of
// truth for stock mutation. The ledger reuses its locked stock primitive
// inside its own transactions.
type CatalogService struct {
	db       *gorm.DB
	blankets *repositories.BlanketRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:       db,
		blankets: repositories.NewBlanketRepository(db),
	}
}

// List returns every blanket model, served from cache when warm.
func (s *CatalogService) List() ([]models.Blanket, error) {
	var blankets []models.Blanket
	if cache.Get(blanketsCacheKey, &blankets) {
		return blankets, nil
	}

	blankets, err := s.blankets.All()
	if err != nil {
		return nil, err
	}

	_ = cache.Set(blanketsCacheKey, blankets, blanketsCacheTTL)
	return blankets, nil
}

// Get returns one blanket model by id.
func (s *CatalogService) Get(id uint) (models.Blanket, error) {
	blanket, err := s.blankets.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Blanket{}, apperr.NotFound("blanket model")
	}
	return blanket, err
}

// Create validates the input and persists a new blanket model. Stock
// defaults to 0 and description to empty when not supplied.
func (s *CatalogService) Create(in CreateBlanketInput) (models.Blanket, error) {
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return models.Blanket{}, apperr.Validation(errs)
	}

	blanket := models.Blanket{
		ModelName:          in.ModelName,
		Material:           in.Material,
		ProductionCapacity: *in.ProductionCapacity,
		Description:        in.Description,
		UnitCost:           *in.UnitCost,
	}
	if in.CurrentStock != nil {
		blanket.CurrentStock = *in.CurrentStock
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.blankets.WithTx(tx)

		taken, err := repo.NameTaken(blanket.ModelName, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflictf("model name %q is already in use", blanket.ModelName)
		}

		return repo.Create(&blanket)
	})
	if err != nil {
		return models.Blanket{}, err
	}

	s.invalidate()
	return blanket, nil
}

// Update applies only the fields present in the input; absent fields keep
// their stored values.
func (s *CatalogService) Update(id uint, in UpdateBlanketInput) (models.Blanket, error) {
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return models.Blanket{}, apperr.Validation(errs)
	}

	var blanket models.Blanket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.blankets.WithTx(tx)

		b, err := repo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("blanket model")
		}
		if err != nil {
			return err
		}

		if in.ModelName != nil && *in.ModelName != b.ModelName {
			taken, err := repo.NameTaken(*in.ModelName, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflictf("model name %q is already in use", *in.ModelName)
			}
			b.ModelName = *in.ModelName
		}
		if in.Material != nil {
			b.Material = *in.Material
		}
		if in.ProductionCapacity != nil {
			b.ProductionCapacity = *in.ProductionCapacity
		}
		if in.Description != nil {
			b.Description = *in.Description
		}
		if in.UnitCost != nil {
			b.UnitCost = *in.UnitCost
		}

		if err := repo.Save(&b); err != nil {
			return err
		}
		blanket = b
		return nil
	})
	if err != nil {
		return models.Blanket{}, err
	}

	s.invalidate()
	return blanket, nil
}

// Delete removes a blanket model. Orders referencing it keep their
// denormalized model name and are not touched.
func (s *CatalogService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		n, err := s.blankets.WithTx(tx).Delete(id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("blanket model")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate()
	return nil
}

// AdjustStock applies a manual add/remove to one blanket's stock and
// returns the new count. Removing more than is on hand fails with
// InsufficientStock and leaves the count unchanged.
func (s *CatalogService) AdjustStock(in AdjustStockInput) (int, error) {
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return 0, apperr.Validation(errs)
	}

	delta := in.Quantity
	if in.Action == StockActionRemove {
		delta = -delta
	}

	var blanket models.Blanket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.applyStockDelta(tx, in.BlanketID, delta)
		if err != nil {
			return err
		}
		blanket = b
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.StockAdjustments.WithLabelValues(in.Action).Inc()
	s.invalidate()
	s.notifyStockLevel(blanket)
	return blanket.CurrentStock, nil
}

// applyStockDelta is the stock-mutation primitive shared with the order
// ledger: lock the row, reject a negative result, write the new count.
// Must run inside a transaction; the caller surfaces the returned error so
// the transaction rolls back.
func (s *CatalogService) applyStockDelta(tx *gorm.DB, id uint, delta int) (models.Blanket, error) {
	repo := s.blankets.WithTx(tx)

	b, err := repo.FindByIDForUpdate(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Blanket{}, apperr.NotFound("blanket model")
	}
	if err != nil {
		return models.Blanket{}, err
	}

	next := b.CurrentStock + delta
	if next < 0 {
		metrics.InsufficientStock.Inc()
		return models.Blanket{}, apperr.InsufficientStock(
			fmt.Sprintf("insufficient stock for %q: have %d, need %d", b.ModelName, b.CurrentStock, -delta))
	}

	b.CurrentStock = next
	if err := repo.Save(&b); err != nil {
		return models.Blanket{}, err
	}
	return b, nil
}

// notifyStockLevel fires stock events after a committed mutation.
func (s *CatalogService) notifyStockLevel(b models.Blanket) {
	event.Fire("stock.adjusted", b)
	if b.CurrentStock <= config.LowStockThreshold() {
		event.Fire("stock.low", b)
	}
}

func (s *CatalogService) invalidate() {
	_ = cache.Del(blanketsCacheKey)
}
