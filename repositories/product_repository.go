package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tech-shop/config"
	"tech-shop/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO products (name, price, brand, category, views, sold_quantity, short_description, detailed_description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 0, 0, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		product.Name,
		product.Price,
		product.Brand,
		product.Category,
		product.ShortDescription,
		product.DetailedDescription,
		now,
		now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}

	for i, url := range product.Images {
		_, err = tx.Exec(ctx,
			"INSERT INTO product_images (product_id, url, position) VALUES ($1, $2, $3)",
			product.ID, url, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, price, brand, category, views, sold_quantity,
		       COALESCE(short_description, ''), COALESCE(detailed_description, ''),
		       created_at, updated_at
		FROM products WHERE id = $1
	`

	product := &models.Product{}
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Brand,
		&product.Category,
		&product.Views,
		&product.SoldQuantity,
		&product.ShortDescription,
		&product.DetailedDescription,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Images, err = r.imagesFor(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// IncrementViews bumps the view counter. Relative update so concurrent
// detail reads do not lose counts.
func (r *ProductRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, "UPDATE products SET views = views + 1 WHERE id = $1", id)
	return err
}

func (r *ProductRepository) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	return r.search(ctx, "", "", "", nil, nil, page, limit)
}

func (r *ProductRepository) Search(ctx context.Context, category, brand, name string, minPrice, maxPrice *float64, page, limit int) ([]models.Product, int, error) {
	return r.search(ctx, category, brand, name, minPrice, maxPrice, page, limit)
}

func (r *ProductRepository) search(ctx context.Context, category, brand, name string, minPrice, maxPrice *float64, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	addCondition := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIndex))
		args = append(args, arg)
		argIndex++
	}

	if category != "" {
		addCondition("category = $%d", category)
	}
	if brand != "" {
		addCondition("brand = $%d", brand)
	}
	if name != "" {
		addCondition("name ILIKE $%d", "%"+name+"%")
	}
	if minPrice != nil {
		addCondition("price >= $%d", *minPrice)
	}
	if maxPrice != nil {
		addCondition("price <= $%d", *maxPrice)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, price, brand, category, views, sold_quantity,
		       COALESCE(short_description, ''), COALESCE(detailed_description, ''),
		       created_at, updated_at
		FROM products` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Brand,
			&p.Category,
			&p.Views,
			&p.SoldQuantity,
			&p.ShortDescription,
			&p.DetailedDescription,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range products {
		products[i].Images, err = r.imagesFor(ctx, products[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

// Update rewrites the product and replaces its image set.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE products
		 SET name = $1, price = $2, brand = $3, category = $4,
		     short_description = $5, detailed_description = $6, updated_at = $7
		 WHERE id = $8`,
		product.Name,
		product.Price,
		product.Brand,
		product.Category,
		product.ShortDescription,
		product.DetailedDescription,
		time.Now(),
		product.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %d", product.ID)
	}

	_, err = tx.Exec(ctx, "DELETE FROM product_images WHERE product_id = $1", product.ID)
	if err != nil {
		return err
	}

	for i, url := range product.Images {
		_, err = tx.Exec(ctx,
			"INSERT INTO product_images (product_id, url, position) VALUES ($1, $2, $3)",
			product.ID, url, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the product and any cart or order lines referencing it.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM cart_items WHERE product_id = $1", id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, "DELETE FROM order_items WHERE product_id = $1", id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %d", id)
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) imagesFor(ctx context.Context, productID int) ([]string, error) {
	rows, err := config.DB.Query(ctx,
		"SELECT url FROM product_images WHERE product_id = $1 ORDER BY position", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		images = append(images, url)
	}

	return images, rows.Err()
}
