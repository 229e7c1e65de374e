package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/apperr"
)

func TestCreateOrderImmediateFulfillment(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 10)

	order, fulfilled, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID:       7,
		BlanketModelID: blanket.ID,
		Quantity:       5,
	})
	require.NoError(t, err)

	assert.True(t, fulfilled)
	assert.Equal(t, models.OrderFulfilled, order.Status)
	assert.Equal(t, "Arctic Wool", order.BlanketModelName)
	require.NotNil(t, order.FulfillmentDate)
	assert.False(t, order.OrderDate.IsZero())
	assert.Equal(t, 5, currentStock(t, db, blanket.ID))
}

func TestCreateOrderPendingWhenStockShort(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 10)

	// Consume half the stock first.
	_, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 5,
	})
	require.NoError(t, err)

	order, fulfilled, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 2, BlanketModelID: blanket.ID, Quantity: 8,
	})
	require.NoError(t, err)

	assert.False(t, fulfilled)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Nil(t, order.FulfillmentDate)
	// A pending order reserves nothing.
	assert.Equal(t, 5, currentStock(t, db, blanket.ID))
}

func TestCreateOrderExactStockFulfills(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 5)

	order, fulfilled, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 5,
	})
	require.NoError(t, err)
	assert.True(t, fulfilled)
	assert.Equal(t, models.OrderFulfilled, order.Status)
	assert.Equal(t, 0, currentStock(t, db, blanket.ID))
}

func TestCreateOrderUnknownBlanket(t *testing.T) {
	ledger, _, _ := newLedger(t)

	_, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: 9999, Quantity: 1,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrderValidation(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 10)

	cases := []services.CreateOrderInput{
		{BlanketModelID: blanket.ID, Quantity: 1},
		{SellerID: 1, Quantity: 1},
		{SellerID: 1, BlanketModelID: blanket.ID},
		{SellerID: 1, BlanketModelID: blanket.ID, Quantity: -2},
	}
	for _, in := range cases {
		_, _, err := ledger.CreateOrder(in)
		assert.Truef(t, apperr.IsValidation(err), "input %+v: expected validation error, got %v", in, err)
	}
}

func TestFulfillPendingOrder(t *testing.T) {
	ledger, catalog, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 3)

	order, fulfilled, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 8,
	})
	require.NoError(t, err)
	require.False(t, fulfilled)

	// Not enough stock yet: fulfillment fails and nothing changes.
	_, err = ledger.FulfillOrder(order.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInsufficientStock(err))
	assert.Equal(t, 3, currentStock(t, db, blanket.ID))

	var stored models.DistributorOrder
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderPending, stored.Status)

	// Restock, then fulfill for real.
	_, err = catalog.AdjustStock(services.AdjustStockInput{
		BlanketID: blanket.ID, Action: services.StockActionAdd, Quantity: 10,
	})
	require.NoError(t, err)

	got, err := ledger.FulfillOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderFulfilled, got.Status)
	require.NotNil(t, got.FulfillmentDate)
	assert.Equal(t, 5, currentStock(t, db, blanket.ID))
}

func TestFulfillOrderTerminalStates(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 20)

	order, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 5,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderFulfilled, order.Status)

	// Fulfilling twice is rejected and stock is not decremented again.
	_, err = ledger.FulfillOrder(order.ID)
	assert.True(t, apperr.IsInvalidState(err))
	assert.Equal(t, 15, currentStock(t, db, blanket.ID))

	_, err = ledger.CancelOrder(order.ID)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestFulfillOrderNotFound(t *testing.T) {
	ledger, _, _ := newLedger(t)
	_, err := ledger.FulfillOrder(777)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCancelPendingOrder(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 2)

	order, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 9,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderPending, order.Status)

	got, err := ledger.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.Status)
	assert.Nil(t, got.FulfillmentDate)
	assert.Equal(t, 2, currentStock(t, db, blanket.ID))

	// A cancelled order is terminal.
	_, err = ledger.FulfillOrder(order.ID)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestCancelOrderNotFound(t *testing.T) {
	ledger, _, _ := newLedger(t)
	_, err := ledger.CancelOrder(777)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFulfillAfterBlanketDeleted(t *testing.T) {
	ledger, catalog, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 1)

	order, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 5,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderPending, order.Status)

	require.NoError(t, catalog.Delete(blanket.ID))

	// The order survives with its denormalized name, but fulfillment
	// needs the live blanket row.
	var stored models.DistributorOrder
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, "Arctic Wool", stored.BlanketModelName)

	_, err = ledger.FulfillOrder(order.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListOrders(t *testing.T) {
	ledger, _, db := newLedger(t)
	blanket := seedBlanket(t, db, "Arctic Wool", 10)

	_, _, err := ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 1, BlanketModelID: blanket.ID, Quantity: 4,
	})
	require.NoError(t, err)
	_, _, err = ledger.CreateOrder(services.CreateOrderInput{
		SellerID: 2, BlanketModelID: blanket.ID, Quantity: 50,
	})
	require.NoError(t, err)

	all, err := ledger.ListOrders("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := ledger.ListOrders(models.OrderPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 50, pending[0].Quantity)

	fulfilled, err := ledger.ListOrders(models.OrderFulfilled)
	require.NoError(t, err)
	require.Len(t, fulfilled, 1)
	assert.Equal(t, 4, fulfilled[0].Quantity)

	// Unknown statuses match nothing rather than erroring.
	none, err := ledger.ListOrders("shipped")
	require.NoError(t, err)
	assert.Empty(t, none)
}
