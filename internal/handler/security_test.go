package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lavanderia/backend/internal/database"
	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/repository"
	"github.com/lavanderia/backend/internal/service"
)

func setupFullRouter(t *testing.T) *gin.Engine {
	t.Helper()
	pool := getTestPool(t)
	if pool == nil {
		t.Skip("no database available")
	}
	t.Cleanup(pool.Close)

	database.MigrationsDir = "file://../../migrations"
	t.Cleanup(func() { database.MigrationsDir = "file://migrations" })

	dbURL := testDBURL()
	_ = database.RollbackMigrations(dbURL)
	if err := database.RunMigrations(dbURL); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	if err := database.SeedData(context.Background(), pool); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	clientRepo := repository.NewClientRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)

	clientService := service.NewClientService(clientRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)

	clientHandler := NewClientHandler(clientService)
	orderHandler := NewOrderHandler(orderService)
	ledgerHandler := NewLedgerHandler(ledgerService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.POST("/orders", orderHandler.Create)
	api.GET("/ledger", ledgerHandler.List)

	return router
}

func TestSQLInjection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router := setupFullRouter(t)

	injections := []struct {
		name string
		url  string
	}{
		{"client search", "/api/v1/clients?search=Maria'%3B+DROP+TABLE+clients%3B+--"},
		{"client search with OR", "/api/v1/clients?search=x'+OR+'1'%3D'1"},
		{"order status", "/api/v1/orders?status=RECEBIDO'%3B+DROP+TABLE+orders%3B+--"},
		{"ledger category", "/api/v1/ledger?category=Pedidos'+UNION+SELECT+*+FROM+pg_catalog.pg_tables+--"},
		{"ledger date", "/api/v1/ledger?date_from=2026-01-01'+OR+'1'%3D'1"},
	}

	for _, tc := range injections {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", tc.url, nil)
			router.ServeHTTP(w, req)

			// Should NOT be 500 (would indicate SQL error from injection)
			// Parameterized queries prevent injection, so we get 200 with empty results or 400
			assert.NotEqual(t, http.StatusInternalServerError, w.Code,
				"SQL injection attempt should not cause 500")
		})
	}

	t.Run("client id injection in order create", func(t *testing.T) {
		body := dto.CreateOrderRequest{
			ClientID: "x' OR '1'='1",
			Items:    []dto.OrderItemRequest{{Description: "Lavagem", Quantity: 1, UnitPrice: 10}},
		}
		jsonBody, _ := json.Marshal(body)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMalformedJSON(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router := setupFullRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"truncated JSON", `{"client_id":"5c9cbb6d-0000-0000-0000-000000000000","items":[`},
		{"null required fields", `{"client_id":null,"items":null}`},
		{"wrong types", `{"client_id":123,"items":"not_a_list"}`},
		{"empty object", `{}`},
		{"just array", `[]`},
		{"empty string", ``},
		{"random string", `hello world`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code,
				"malformed JSON should return 400, got %d for %s", w.Code, tc.name)
		})
	}
}

func TestBoundaryConditions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router := setupFullRouter(t)

	createClient := func(t *testing.T) string {
		body, _ := json.Marshal(dto.ClientRequest{Name: "Cliente Limite"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/clients", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.ID
	}

	t.Run("order: 0 items rejected", func(t *testing.T) {
		clientID := createClient(t)
		body := fmt.Sprintf(`{"client_id":"%s","items":[]}`, clientID)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("order: 101 items rejected", func(t *testing.T) {
		clientID := createClient(t)
		items := make([]dto.OrderItemRequest, 101)
		for i := range items {
			items[i] = dto.OrderItemRequest{Description: "Peça", Quantity: 1, UnitPrice: 3.50}
		}
		body, _ := json.Marshal(dto.CreateOrderRequest{ClientID: clientID, Items: items})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("order: zero quantity rejected", func(t *testing.T) {
		clientID := createClient(t)
		body, _ := json.Marshal(dto.CreateOrderRequest{
			ClientID: clientID,
			Items:    []dto.OrderItemRequest{{Description: "Peça", Quantity: 0, UnitPrice: 3.50}},
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page_size: negative defaults to 20", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/clients?page_size=-1", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("page_size: 101 caps to 100", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/clients?page_size=101", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("large order value accepted", func(t *testing.T) {
		clientID := createClient(t)
		body, _ := json.Marshal(dto.CreateOrderRequest{
			ClientID: clientID,
			Items:    []dto.OrderItemRequest{{Description: "Contrato corporativo", Quantity: 1, UnitPrice: 9999999.99}},
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
