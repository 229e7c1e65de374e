package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/bind"
	"github.com/shashiranjanraj/cozyloom/pkg/response"
)

// InventoryController serves the manual stock-adjustment endpoint.
type InventoryController struct {
	catalog *services.CatalogService
}

func NewInventoryController(catalog *services.CatalogService) *InventoryController {
	return &InventoryController{catalog: catalog}
}

// Adjust — POST /api/inventory
func (c *InventoryController) Adjust(w http.ResponseWriter, r *http.Request) {
	var in services.AdjustStockInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	stock, err := c.catalog.AdjustStock(in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	response.SuccessMessage(w, "Inventory updated successfully", map[string]int{
		"current_stock": stock,
	})
}
