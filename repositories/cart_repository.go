package repositories

import (
	"context"

	"tech-shop/config"
	"tech-shop/models"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// GetOrCreateByUser returns the user's cart, creating an empty one on first
// access. The unique constraint on carts.user_id keeps concurrent first
// requests from creating duplicates.
func (r *CartRepository) GetOrCreateByUser(ctx context.Context, userID int) (*models.Cart, error) {
	_, err := config.DB.Exec(ctx,
		"INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: userID}
	err = config.DB.QueryRow(ctx, "SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items, err = r.itemsFor(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// AddItem accumulates quantity on the (cart, product) line, creating it when
// absent. The additive upsert keeps concurrent adds from overwriting each other.
func (r *CartRepository) AddItem(ctx context.Context, cartID, productID, quantity int) error {
	_, err := config.DB.Exec(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW())
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()`,
		cartID, productID, quantity)
	return err
}

func (r *CartRepository) FindItem(ctx context.Context, itemID int) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := config.DB.QueryRow(ctx,
		"SELECT id, cart_id, product_id, quantity, created_at, updated_at FROM cart_items WHERE id = $1",
		itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID, quantity int) error {
	_, err := config.DB.Exec(ctx,
		"UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2",
		quantity, itemID)
	return err
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID int) error {
	_, err := config.DB.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", itemID)
	return err
}

func (r *CartRepository) ClearItems(ctx context.Context, cartID int) error {
	_, err := config.DB.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID)
	return err
}

func (r *CartRepository) itemsFor(ctx context.Context, cartID int) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, p.name, p.price,
		       COALESCE((SELECT url FROM product_images WHERE product_id = p.id ORDER BY position LIMIT 1), ''),
		       ci.quantity, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := config.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.ProductImage,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
