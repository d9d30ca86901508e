package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-shop/models"
)

type fakeProductStore struct {
	products  map[int]*models.Product
	nextID    int
	failViews bool
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	store := &fakeProductStore{products: map[int]*models.Product{}, nextID: 1}
	for _, p := range products {
		store.products[p.ID] = p
		if p.ID >= store.nextID {
			store.nextID = p.ID + 1
		}
	}
	return store
}

func (f *fakeProductStore) Create(ctx context.Context, product *models.Product) error {
	product.ID = f.nextID
	f.nextID++
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id int) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductStore) IncrementViews(ctx context.Context, id int) error {
	if f.failViews {
		return errors.New("connection refused")
	}
	if product, ok := f.products[id]; ok {
		product.Views++
	}
	return nil
}

func (f *fakeProductStore) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	var result []models.Product
	for _, p := range f.products {
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (f *fakeProductStore) Search(ctx context.Context, category, brand, name string, minPrice, maxPrice *float64, page, limit int) ([]models.Product, int, error) {
	var result []models.Product
	for _, p := range f.products {
		if category != "" && p.Category != category {
			continue
		}
		if brand != "" && p.Brand != brand {
			continue
		}
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (f *fakeProductStore) Update(ctx context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

func TestGetProductCountsView(t *testing.T) {
	store := newFakeProductStore(&models.Product{ID: 1, Name: "Nova X1 Laptop", Views: 4})
	svc := NewProductService(store)

	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), product.Views)
	assert.Equal(t, int64(5), store.products[1].Views)
}

func TestGetProductViewBumpFailureIsIgnored(t *testing.T) {
	store := newFakeProductStore(&models.Product{ID: 1, Name: "Nova X1 Laptop", Views: 4})
	store.failViews = true
	svc := NewProductService(store)

	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), product.Views)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductStore())

	_, err := svc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductDefaultsImages(t *testing.T) {
	svc := NewProductService(newFakeProductStore())

	product, err := svc.CreateProduct(context.Background(), models.ProductRequest{
		Name:  "Clackr MX Keyboard",
		Price: 119.00,
	})
	require.NoError(t, err)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.NotZero(t, product.ID)
}

func TestSearchProductsFilters(t *testing.T) {
	store := newFakeProductStore(
		&models.Product{ID: 1, Name: "Nova X1 Laptop", Category: "Laptops", Brand: "Nova", Price: 1299},
		&models.Product{ID: 2, Name: "Sonor Buds Pro", Category: "Audio", Brand: "Sonor", Price: 149},
	)
	svc := NewProductService(store)

	minPrice := 500.0
	products, meta, err := svc.SearchProducts(context.Background(), "", "", "", &minPrice, nil, 1, 12)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Nova X1 Laptop", products[0].Name)
	assert.Equal(t, 1, meta.Total)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductStore())

	err := svc.DeleteProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 12)
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)

	page, limit = normalizePage(-3, 500, 12)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = normalizePage(4, 25, 12)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestPaginationMeta(t *testing.T) {
	meta := paginationMeta(2, 10, 25)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	meta = paginationMeta(1, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
