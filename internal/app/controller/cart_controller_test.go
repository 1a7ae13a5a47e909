package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartControllerTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	cartService := service.NewCartService(cartRepo, userRepo, nil)
	cartController := NewCartController(cartService)

	// Create test user
	require.NoError(t, userRepo.Create(context.Background(), &model.User{
		Username:     "alice",
		PasswordHash: "hash",
	}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	registerCartRoutes(router, cartController)

	return router
}

func registerCartRoutes(router *gin.Engine, ctrl *CartController) {
	router.POST("/users/:username/shopping_cart/", ctrl.CreateCart)
	router.GET("/users/:username/shopping_cart", ctrl.GetCart)
	router.DELETE("/users/:username/shopping_cart", ctrl.DeleteCart)
	router.POST("/users/:username/shopping_cart/items/", ctrl.AddItem)
	router.DELETE("/users/:username/shopping_cart/items/:item_id", ctrl.RemoveItem)
	router.PUT("/users/:username/shopping_cart/items/:item_id", ctrl.UpdateQuantity)
}

func doJSON(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func duneRequest(quantity int) AddCartItemRequest {
	return AddCartItemRequest{ItemID: "b1", ItemName: "Dune", Quantity: quantity, PricePerItem: 15.0}
}

func TestCartController_CreateCart_Success(t *testing.T) {
	router := setupCartControllerTest(t)

	w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cart := response["cart"].(map[string]interface{})
	assert.Equal(t, "alice", cart["user_id"])
	assert.Empty(t, cart["items"])
}

func TestCartController_CreateCart_UserNotFound(t *testing.T) {
	router := setupCartControllerTest(t)

	w, response := doJSON(router, http.MethodPost, "/users/ghost/shopping_cart/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", response["error"])
}

func TestCartController_CreateCart_Conflict(t *testing.T) {
	router := setupCartControllerTest(t)

	w, _ := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CART_ALREADY_EXISTS", response["error"])
}

func TestCartController_GetCart_NotFound(t *testing.T) {
	router := setupCartControllerTest(t)

	w, response := doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_NOT_FOUND", response["error"])
}

func TestCartController_GetCart_Totals(t *testing.T) {
	router := setupCartControllerTest(t)

	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(2))
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", AddCartItemRequest{
		ItemID: "b2", ItemName: "Emma", Quantity: 1, PricePerItem: 9.5,
	})

	w, response := doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), response["count"])
	assert.Equal(t, 39.5, response["total"]) // 15*2 + 9.5
}

func TestCartController_AddItem_Merges(t *testing.T) {
	router := setupCartControllerTest(t)

	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	w, _ := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(2))
	require.Equal(t, http.StatusOK, w.Code)

	w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(3))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item added to cart successfully", response["message"])

	items := response["cart"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "b1", item["item_id"])
	assert.Equal(t, float64(5), item["quantity"])
}

func TestCartController_AddItem_CartNotFound(t *testing.T) {
	router := setupCartControllerTest(t)

	w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(1))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_NOT_FOUND", response["error"])
}

func TestCartController_AddItem_InvalidBody(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing item id", map[string]interface{}{"item_name": "Dune", "quantity": 1, "price_per_item": 1}},
		{"zero quantity", map[string]interface{}{"item_id": "b1", "item_name": "Dune", "quantity": 0}},
		{"negative price", map[string]interface{}{"item_id": "b1", "item_name": "Dune", "quantity": 1, "price_per_item": -1}},
		{"quantity as string", map[string]interface{}{"item_id": "b1", "item_name": "Dune", "quantity": "two"}},
		{"item id too long", map[string]interface{}{"item_id": strings.Repeat("b", 101), "item_name": "Dune", "quantity": 1}},
		{"item name too long", map[string]interface{}{"item_id": "b1", "item_name": strings.Repeat("D", 256), "quantity": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
		})
	}
}

func TestCartController_AddItem_ReportsInvalidFields(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	w, response := doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", map[string]interface{}{
		"item_id":   strings.Repeat("b", 101),
		"item_name": "Dune",
		"quantity":  0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
	assert.Equal(t, map[string]interface{}{
		"item_id":  "must be at most 100 characters",
		"quantity": "is required",
	}, response["fields"])

	_, response = doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)
	assert.Equal(t, float64(0), response["count"])
}

func TestCartController_UpdateQuantity_Query(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(5))

	w, _ := doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1?quantity=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, response := doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)
	items := response["cart"].(map[string]interface{})["items"].([]interface{})
	assert.Equal(t, float64(1), items[0].(map[string]interface{})["quantity"])
}

func TestCartController_UpdateQuantity_Body(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(5))

	w, _ := doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	_, response := doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)
	assert.Equal(t, float64(45), response["total"])
}

func TestCartController_UpdateQuantity_Errors(t *testing.T) {
	router := setupCartControllerTest(t)

	w, response := doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1?quantity=2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_NOT_FOUND", response["error"])

	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	w, response = doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1?quantity=2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", response["error"])

	w, response = doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1?quantity=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CART_INVALID_QUANTITY", response["error"])

	w, response = doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1?quantity=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])

	w, _ = doJSON(router, http.MethodPut, "/users/alice/shopping_cart/items/b1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_RemoveItem(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/items/", duneRequest(2))

	w, response := doJSON(router, http.MethodDelete, "/users/alice/shopping_cart/items/b1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item removed from cart successfully", response["message"])

	w, response = doJSON(router, http.MethodDelete, "/users/alice/shopping_cart/items/b1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", response["error"])
}

func TestCartController_DeleteCart(t *testing.T) {
	router := setupCartControllerTest(t)
	doJSON(router, http.MethodPost, "/users/alice/shopping_cart/", nil)

	w, _ := doJSON(router, http.MethodDelete, "/users/alice/shopping_cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, response := doJSON(router, http.MethodDelete, "/users/alice/shopping_cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_NOT_FOUND", response["error"])
}

type unavailableCartService struct {
	service.CartService
}

func (unavailableCartService) GetCart(ctx context.Context, userID string) (*model.ShoppingCart, error) {
	return nil, errors.Join(service.ErrStoreUnavailable, context.DeadlineExceeded)
}

func TestCartController_GetCart_StoreUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	registerCartRoutes(router, NewCartController(unavailableCartService{}))

	w, response := doJSON(router, http.MethodGet, "/users/alice/shopping_cart", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "INTERNAL_STORE_UNAVAILABLE", response["error"])
}
