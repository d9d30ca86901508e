package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-shop/models"
	"tech-shop/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrEmptyCart, http.StatusConflict},
		{services.ErrInvalidOrderState, http.StatusConflict},
		{services.ErrEmailTaken, http.StatusBadRequest},
		{services.ErrInvalidResetCode, http.StatusBadRequest},
		{services.ErrUnknownOrderStatus, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.status, resp.Status)
	}
}

func TestRespondErrorHidesInternalMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, context.DeadlineExceeded)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.NotEmpty(t, resp.Error)
}

type stubCartStore struct {
	cart *models.Cart
}

func (s *stubCartStore) GetOrCreateByUser(ctx context.Context, userID int) (*models.Cart, error) {
	return s.cart, nil
}

func (s *stubCartStore) AddItem(ctx context.Context, cartID, productID, quantity int) error {
	return nil
}

func (s *stubCartStore) FindItem(ctx context.Context, itemID int) (*models.CartItem, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubCartStore) UpdateItemQuantity(ctx context.Context, itemID, quantity int) error {
	return nil
}

func (s *stubCartStore) DeleteItem(ctx context.Context, itemID int) error { return nil }

func (s *stubCartStore) ClearItems(ctx context.Context, cartID int) error { return nil }

type stubProductFinder struct{}

func (s *stubProductFinder) FindByID(ctx context.Context, id int) (*models.Product, error) {
	return nil, pgx.ErrNoRows
}

func cartRouter(store *stubCartStore) *gin.Engine {
	router := gin.New()
	ctrl := NewCartController(services.NewCartService(store, &stubProductFinder{}))

	router.Use(func(c *gin.Context) {
		c.Set("user_id", 7)
		c.Next()
	})
	router.GET("/api/cart", ctrl.GetCart)
	router.POST("/api/cart/add", ctrl.AddToCart)
	router.PUT("/api/cart/items/:id", ctrl.UpdateCartItem)

	return router
}

func TestGetCartEnvelope(t *testing.T) {
	store := &stubCartStore{cart: &models.Cart{ID: 700, UserID: 7, Items: []models.CartItem{}}}
	router := cartRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestAddToCartValidation(t *testing.T) {
	store := &stubCartStore{cart: &models.Cart{ID: 700, UserID: 7}}
	router := cartRouter(store)

	// Quantity below one fails binding before the service runs.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add",
		strings.NewReader(`{"product_id": 10, "quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	store := &stubCartStore{cart: &models.Cart{ID: 700, UserID: 7}}
	router := cartRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add",
		strings.NewReader(`{"product_id": 10, "quantity": 1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemBadID(t *testing.T) {
	store := &stubCartStore{cart: &models.Cart{ID: 700, UserID: 7}}
	router := cartRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/abc",
		strings.NewReader(`{"quantity": 2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
