package services

import (
	"errors"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/repositories"
	"github.com/shashiranjanraj/cozyloom/pkg/apperr"
	"github.com/shashiranjanraj/cozyloom/pkg/event"
	"github.com/shashiranjanraj/cozyloom/pkg/metrics"
	"github.com/shashiranjanraj/cozyloom/pkg/validate"
	"gorm.io/gorm"
)

// CreateOrderInput is the payload for placing a distributor order.
type CreateOrderInput struct {
	SellerID       uint `json:"seller_id"        validate:"required"`
	BlanketModelID uint `json:"blanket_model_id" validate:"required"`
	Quantity       int  `json:"quantity"         validate:"required,gt=0"`
}

// LedgerService owns the distributor order lifecycle. Every mutation runs
// as one transaction; stock decrements go through the catalog's locked
// primitive so an order row and its stock movement commit together or not
// at all.
type LedgerService struct {
	db      *gorm.DB
	orders  *repositories.OrderRepository
	catalog *CatalogService
}

func NewLedgerService(db *gorm.DB, catalog *CatalogService) *LedgerService {
	return &LedgerService{
		db:      db,
		orders:  repositories.NewOrderRepository(db),
		catalog: catalog,
	}
}

// CreateOrder records a new distributor order. When the blanket has enough
// stock the order is fulfilled on the spot: the decrement and the order
// row are one unit of work. Otherwise the order is created pending and
// stock is untouched. The second return value reports immediate
// fulfillment.
func (s *LedgerService) CreateOrder(in CreateOrderInput) (models.DistributorOrder, bool, error) {
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return models.DistributorOrder{}, false, apperr.Validation(errs)
	}

	var order models.DistributorOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the blanket row up front: the stock read that decides
		// pending vs fulfilled must not race another order.
		blanket, err := s.catalog.blankets.WithTx(tx).FindByIDForUpdate(in.BlanketModelID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("blanket model")
		}
		if err != nil {
			return err
		}

		order = models.DistributorOrder{
			SellerID:         in.SellerID,
			BlanketModelID:   in.BlanketModelID,
			BlanketModelName: blanket.ModelName, // captured now, never re-synced
			Quantity:         in.Quantity,
			Status:           models.OrderPending,
			OrderDate:        models.Now(),
		}

		if blanket.CurrentStock >= in.Quantity {
			if _, err := s.catalog.applyStockDelta(tx, blanket.ID, -in.Quantity); err != nil {
				return err
			}
			order.Status = models.OrderFulfilled
			order.FulfillmentDate = models.NowPtr()
		}

		return s.orders.WithTx(tx).Create(&order)
	})
	if err != nil {
		return models.DistributorOrder{}, false, err
	}

	fulfilled := order.Status == models.OrderFulfilled
	metrics.OrdersCreated.WithLabelValues(string(order.Status)).Inc()
	s.afterStockConsumed(fulfilled, order.BlanketModelID)
	event.Fire("order.created", order)
	return order, fulfilled, nil
}

// ListOrders returns orders newest-first, optionally filtered to one
// status. An unknown status simply matches nothing.
func (s *LedgerService) ListOrders(status models.OrderStatus) ([]models.DistributorOrder, error) {
	return s.orders.All(status)
}

// FulfillOrder transitions a pending order to fulfilled, decrementing the
// blanket's stock by the full order quantity. There is no partial
// fulfillment: too little stock fails the whole operation.
func (s *LedgerService) FulfillOrder(id uint) (models.DistributorOrder, error) {
	var order models.DistributorOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orders.WithTx(tx)

		o, err := repo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order")
		}
		if err != nil {
			return err
		}

		if o.Status != models.OrderPending {
			return apperr.InvalidStatef("order %d is %s, only pending orders can be fulfilled", o.ID, o.Status)
		}

		// NotFound (blanket deleted since ordering) and InsufficientStock
		// both surface from the stock primitive and roll everything back.
		if _, err := s.catalog.applyStockDelta(tx, o.BlanketModelID, -o.Quantity); err != nil {
			return err
		}

		o.Status = models.OrderFulfilled
		o.FulfillmentDate = models.NowPtr()
		if err := repo.Save(&o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return models.DistributorOrder{}, err
	}

	metrics.OrdersFulfilled.Inc()
	s.afterStockConsumed(true, order.BlanketModelID)
	event.Fire("order.fulfilled", order)
	return order, nil
}

// CancelOrder transitions a pending order to cancelled. Stock is never
// touched: a pending order holds no reservation.
func (s *LedgerService) CancelOrder(id uint) (models.DistributorOrder, error) {
	var order models.DistributorOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orders.WithTx(tx)

		o, err := repo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order")
		}
		if err != nil {
			return err
		}

		if o.Status != models.OrderPending {
			return apperr.InvalidStatef("order %d is %s, only pending orders can be cancelled", o.ID, o.Status)
		}

		o.Status = models.OrderCancelled
		if err := repo.Save(&o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return models.DistributorOrder{}, err
	}

	metrics.OrdersCancelled.Inc()
	event.Fire("order.cancelled", order)
	return order, nil
}

// afterStockConsumed refreshes cache and stock events after a commit that
// may have decremented stock.
func (s *LedgerService) afterStockConsumed(consumed bool, blanketID uint) {
	if !consumed {
		return
	}
	s.catalog.invalidate()
	if b, err := s.catalog.blankets.FindByID(blanketID); err == nil {
		s.catalog.notifyStockLevel(b)
	}
}
