package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/bind"
	"github.com/shashiranjanraj/cozyloom/pkg/response"
)

// OrderController serves the distributor order endpoints.
type OrderController struct {
	ledger *services.LedgerService
}

func NewOrderController(ledger *services.LedgerService) *OrderController {
	return &OrderController{ledger: ledger}
}

// Index — GET /api/orders?status=pending|fulfilled|cancelled
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))

	orders, err := c.ledger.ListOrders(status)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Store — POST /api/orders
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, fulfilled, err := c.ledger.CreateOrder(in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	response.CreatedMessage(w, "Order created successfully", map[string]interface{}{
		"order":     order,
		"fulfilled": fulfilled,
	})
}

// Fulfill — POST /api/orders/{id}/fulfill
func (c *OrderController) Fulfill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.ledger.FulfillOrder(id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.SuccessMessage(w, "Order fulfilled successfully", order)
}

// Cancel — POST /api/orders/{id}/cancel
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.ledger.CancelOrder(id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.SuccessMessage(w, "Order cancelled successfully", order)
}
