package services

import (
	"context"
	"log"

	"tech-shop/models"
)

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int) (*models.Product, error)
	IncrementViews(ctx context.Context, id int) error
	FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error)
	Search(ctx context.Context, category, brand, name string, minPrice, maxPrice *float64, page, limit int) ([]models.Product, int, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
}

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) GetProducts(ctx context.Context, page, limit int) ([]models.Product, models.PaginationMeta, error) {
	page, limit = normalizePage(page, limit, 12)

	products, total, err := s.products.FindAll(ctx, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return products, paginationMeta(page, limit, total), nil
}

// GetProduct returns the product and bumps its view counter. A failed bump
// never fails the read.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.products.IncrementViews(ctx, id); err != nil {
		log.Printf("Failed to increment views for product %d: %v", id, err)
	} else {
		product.Views++
	}

	return product, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, category, brand, name string, minPrice, maxPrice *float64, page, limit int) ([]models.Product, models.PaginationMeta, error) {
	page, limit = normalizePage(page, limit, 12)

	products, total, err := s.products.Search(ctx, category, brand, name, minPrice, maxPrice, page, limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	return products, paginationMeta(page, limit, total), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:                req.Name,
		Price:               req.Price,
		Brand:               req.Brand,
		Category:            req.Category,
		ShortDescription:    req.ShortDescription,
		DetailedDescription: req.DetailedDescription,
		Images:              req.Images,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req models.ProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Brand = req.Brand
	product.Category = req.Category
	product.ShortDescription = req.ShortDescription
	product.DetailedDescription = req.DetailedDescription
	product.Images = req.Images
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	return s.products.Delete(ctx, id)
}
