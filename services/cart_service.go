package services

import (
	"context"

	"tech-shop/models"
)

type CartStore interface {
	GetOrCreateByUser(ctx context.Context, userID int) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, productID, quantity int) error
	FindItem(ctx context.Context, itemID int) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID, quantity int) error
	DeleteItem(ctx context.Context, itemID int) error
	ClearItems(ctx context.Context, cartID int) error
}

// ProductFinder is the slice of the product store the cart needs.
type ProductFinder interface {
	FindByID(ctx context.Context, id int) (*models.Product, error)
}

type CartService struct {
	carts    CartStore
	products ProductFinder
}

func NewCartService(carts CartStore, products ProductFinder) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the caller's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID int) (*models.Cart, error) {
	return s.carts.GetOrCreateByUser(ctx, userID)
}

// AddToCart accumulates quantity onto the (cart, product) line: adding the
// same product twice adds up rather than overwriting.
func (s *CartService) AddToCart(ctx context.Context, userID int, req models.AddToCartRequest) (*models.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.carts.AddItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	return s.carts.GetOrCreateByUser(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID, quantity int) (*models.Cart, error) {
	if err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}

	return s.carts.GetOrCreateByUser(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) (*models.Cart, error) {
	if err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	return s.carts.GetOrCreateByUser(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID int) (*models.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		return nil, err
	}

	cart.Items = []models.CartItem{}
	return cart, nil
}

// ownedItem verifies the line item exists and belongs to the caller's cart.
// An item owned by someone else is reported exactly like a missing one.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID int) error {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}

	item, err := s.carts.FindItem(ctx, itemID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if item.CartID != cart.ID {
		return ErrNotFound
	}

	return nil
}
