package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/bind"
	"github.com/shashiranjanraj/cozyloom/pkg/response"
)

// BlanketController serves the blanket catalogue CRUD endpoints.
type BlanketController struct {
	catalog *services.CatalogService
}

func NewBlanketController(catalog *services.CatalogService) *BlanketController {
	return &BlanketController{catalog: catalog}
}

// Index — GET /api/blankets
func (c *BlanketController) Index(w http.ResponseWriter, r *http.Request) {
	blankets, err := c.catalog.List()
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, blankets)
}

// Show — GET /api/blankets/{id}
func (c *BlanketController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	blanket, err := c.catalog.Get(id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, blanket)
}

// Store — POST /api/blankets
func (c *BlanketController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CreateBlanketInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	blanket, err := c.catalog.Create(in)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.CreatedMessage(w, "Blanket model added successfully", blanket)
}

// Update — PUT /api/blankets/{id}
func (c *BlanketController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.UpdateBlanketInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	blanket, err := c.catalog.Update(id, in)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.SuccessMessage(w, "Blanket model updated successfully", blanket)
}

// Destroy — DELETE /api/blankets/{id}
func (c *BlanketController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.catalog.Delete(id); err != nil {
		renderError(w, r, err)
		return
	}
	response.SuccessMessage(w, "Blanket model deleted successfully", nil)
}
