package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-shop/models"
)

type fakeProductFinder struct {
	products map[int]*models.Product
}

func (f *fakeProductFinder) FindByID(ctx context.Context, id int) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func newCartService(carts *fakeCartStore, products ...*models.Product) *CartService {
	finder := &fakeProductFinder{products: map[int]*models.Product{}}
	for _, p := range products {
		finder.products[p.ID] = p
	}
	return NewCartService(carts, finder)
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	carts := newFakeCartStore()
	svc := newCartService(carts, &models.Product{ID: 10, Name: "Vireo 27 Monitor", Price: 329.00})

	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, models.AddToCartRequest{ProductID: 10, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Same product again: the line grows instead of duplicating.
	cart, err = svc.AddToCart(ctx, 7, models.AddToCartRequest{ProductID: 10, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := newCartService(newFakeCartStore())

	_, err := svc.AddToCart(context.Background(), 7, models.AddToCartRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	svc := newCartService(newFakeCartStore())

	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestUpdateItemRejectsForeignItem(t *testing.T) {
	carts := newFakeCartStore()
	carts.seed(8, models.CartItem{ID: 55, ProductID: 10, Quantity: 1})
	svc := newCartService(carts)

	// User 7 cannot touch an item that lives in user 8's cart.
	_, err := svc.UpdateItem(context.Background(), 7, 55, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RemoveItem(context.Background(), 7, 55)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndRemoveOwnItem(t *testing.T) {
	carts := newFakeCartStore()
	carts.seed(7, models.CartItem{ID: 55, ProductID: 10, Quantity: 1})
	svc := newCartService(carts)

	ctx := context.Background()

	cart, err := svc.UpdateItem(ctx, 7, 55, 4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	cart, err = svc.RemoveItem(ctx, 7, 55)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	carts := newFakeCartStore()
	carts.seed(7,
		models.CartItem{ID: 1, ProductID: 10, Quantity: 1},
		models.CartItem{ID: 2, ProductID: 20, Quantity: 2},
	)
	svc := newCartService(carts)

	cart, err := svc.ClearCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	reloaded, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
}
