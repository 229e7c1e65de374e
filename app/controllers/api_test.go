package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/cozyloom/app/models"
	"github.com/shashiranjanraj/cozyloom/app/routes"
	"github.com/shashiranjanraj/cozyloom/app/services"
	"github.com/shashiranjanraj/cozyloom/pkg/router"
)

var dbSeq atomic.Int64

// newTestServer spins up the full route surface against a fresh
// in-memory database.
func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Blanket{}, &models.DistributorOrder{}))

	catalog := services.NewCatalogService(db)
	ledger := services.NewLedgerService(db, catalog)

	r := router.New()
	routes.RegisterAPI(r, catalog, ledger)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv, db
}

// apiEnvelope mirrors the JSON response envelope.
type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, method, url string, body interface{}) (int, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func createBlanket(t *testing.T, srv *httptest.Server, name string, stock int) models.Blanket {
	t.Helper()
	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/blankets", map[string]interface{}{
		"model_name":          name,
		"material":            "wool",
		"current_stock":       stock,
		"production_capacity": 100,
		"unit_cost":           29.99,
	})
	require.Equal(t, http.StatusCreated, code)

	var b models.Blanket
	require.NoError(t, json.Unmarshal(env.Data, &b))
	return b
}

func TestBlanketCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	// Create
	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/blankets", map[string]interface{}{
		"model_name":          "Arctic Wool",
		"material":            "merino",
		"current_stock":       12,
		"production_capacity": 80,
		"unit_cost":           54.5,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Blanket model added successfully", env.Message)

	var created models.Blanket
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)

	// Duplicate name
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/blankets", map[string]interface{}{
		"model_name":          "Arctic Wool",
		"material":            "merino",
		"production_capacity": 80,
		"unit_cost":           54.5,
	})
	assert.Equal(t, http.StatusConflict, code)

	// Show
	code, env = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/blankets/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, code)
	var got models.Blanket
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Arctic Wool", got.ModelName)
	assert.Equal(t, 12, got.CurrentStock)

	// Update (partial)
	code, env = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/blankets/%d", srv.URL, created.ID), map[string]interface{}{
		"material": "alpaca",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Blanket model updated successfully", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "alpaca", got.Material)
	assert.Equal(t, "Arctic Wool", got.ModelName)

	// Index
	code, env = doJSON(t, http.MethodGet, srv.URL+"/api/blankets", nil)
	require.Equal(t, http.StatusOK, code)
	var list []models.Blanket
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	// Delete
	code, env = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/blankets/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Blanket model deleted successfully", env.Message)

	code, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/blankets/%d", srv.URL, created.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBlanketValidationOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/blankets", map[string]interface{}{
		"material": "wool",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "model_name")
	assert.Contains(t, env.Errors, "unit_cost")
}

func TestBlanketBadJSONOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/blankets", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventoryAdjustOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	b := createBlanket(t, srv, "Cloudline", 10)

	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/inventory", map[string]interface{}{
		"blanket_id": b.ID,
		"action":     "add",
		"quantity":   5,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Inventory updated successfully", env.Message)

	var data map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 15, data["current_stock"])

	// Removing more than on hand is rejected.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/inventory", map[string]interface{}{
		"blanket_id": b.ID,
		"action":     "remove",
		"quantity":   100,
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	b := createBlanket(t, srv, "Hearth Quilted", 10)

	// Enough stock: fulfilled immediately.
	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]interface{}{
		"seller_id":        3,
		"blanket_model_id": b.ID,
		"quantity":         6,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Order created successfully", env.Message)

	var createResp struct {
		Order     models.DistributorOrder `json:"order"`
		Fulfilled bool                    `json:"fulfilled"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &createResp))
	assert.True(t, createResp.Fulfilled)
	assert.Equal(t, models.OrderFulfilled, createResp.Order.Status)
	assert.NotNil(t, createResp.Order.FulfillmentDate)

	// Not enough stock left: pending.
	code, env = doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]interface{}{
		"seller_id":        4,
		"blanket_model_id": b.ID,
		"quantity":         8,
	})
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(env.Data, &createResp))
	assert.False(t, createResp.Fulfilled)
	assert.Equal(t, models.OrderPending, createResp.Order.Status)
	pendingID := createResp.Order.ID

	// Fulfilling the pending order fails: only 4 left, 8 wanted.
	code, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/orders/%d/fulfill", srv.URL, pendingID), nil)
	assert.Equal(t, http.StatusConflict, code)

	// Restock and retry.
	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/inventory", map[string]interface{}{
		"blanket_id": b.ID,
		"action":     "add",
		"quantity":   10,
	})
	require.Equal(t, http.StatusOK, code)

	code, env = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/orders/%d/fulfill", srv.URL, pendingID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order fulfilled successfully", env.Message)

	// A fulfilled order cannot be cancelled.
	code, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/orders/%d/cancel", srv.URL, pendingID), nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestOrderCancelOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	b := createBlanket(t, srv, "Nomad Roll", 1)

	code, env := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]interface{}{
		"seller_id":        1,
		"blanket_model_id": b.ID,
		"quantity":         5,
	})
	require.Equal(t, http.StatusCreated, code)

	var createResp struct {
		Order models.DistributorOrder `json:"order"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &createResp))

	code, env = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/orders/%d/cancel", srv.URL, createResp.Order.ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order cancelled successfully", env.Message)

	var cancelled models.DistributorOrder
	require.NoError(t, json.Unmarshal(env.Data, &cancelled))
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestOrderIndexFilterOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	b := createBlanket(t, srv, "Arctic Wool", 10)

	for _, qty := range []int{4, 50} {
		code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/orders", map[string]interface{}{
			"seller_id":        1,
			"blanket_model_id": b.ID,
			"quantity":         qty,
		})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := doJSON(t, http.MethodGet, srv.URL+"/api/orders?status=pending", nil)
	require.Equal(t, http.StatusOK, code)

	var orders []models.DistributorOrder
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, 50, orders[0].Quantity)
}

func TestOrderNotFoundOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/orders/999/fulfill", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, http.MethodPost, srv.URL+"/api/orders/abc/cancel", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	code, env := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, code)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data["status"])
}
