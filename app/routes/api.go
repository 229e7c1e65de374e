package routes

import (
	"net/http"

	"github.com/shashiranjanraj/cozyloom/app/controllers"
	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/response"
	"github.com/shashiranjanraj/cozyloom/pkg/router"
)

// RegisterAPI mounts every API route. Services are passed in by the
// caller; routes never construct their own database handles.
func RegisterAPI(r *router.Router, catalog *services.CatalogService, ledger *services.LedgerService) {
	blanketController := controllers.NewBlanketController(catalog)
	inventoryController := controllers.NewInventoryController(catalog)
	orderController := controllers.NewOrderController(ledger)

	api := r.Group("/api")

	api.Get("/blankets", "blankets.index", blanketController.Index)
	api.Post("/blankets", "blankets.store", blanketController.Store)
	api.Get("/blankets/{id}", "blankets.show", blanketController.Show)
	api.Put("/blankets/{id}", "blankets.update", blanketController.Update)
	api.Delete("/blankets/{id}", "blankets.destroy", blanketController.Destroy)

	api.Post("/inventory", "inventory.adjust", inventoryController.Adjust)

	api.Get("/orders", "orders.index", orderController.Index)
	api.Post("/orders", "orders.store", orderController.Store)
	api.Post("/orders/{id}/fulfill", "orders.fulfill", orderController.Fulfill)
	api.Post("/orders/{id}/cancel", "orders.cancel", orderController.Cancel)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}
