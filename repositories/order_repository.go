package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"tech-shop/config"
	"tech-shop/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateFromCart builds and persists the order in one transaction: it locks
// and reads the cart's lines, copies them into order lines with frozen
// prices, computes the total, increments sold-quantity on every ordered
// product, and removes the cart's lines. The cart row itself survives. The
// order is built from the locked read, never from an earlier snapshot, so a
// concurrent checkout of the same cart blocks here and then finds no lines
// left, reported as pgx.ErrNoRows. Any failure rolls the whole operation
// back.
func (r *OrderRepository) CreateFromCart(ctx context.Context, order *models.Order, cartID int) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	lines, err := lockCartLines(ctx, tx, cartID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return pgx.ErrNoRows
	}

	order.Items, order.TotalAmount = orderLinesFrom(lines)

	now := time.Now()
	order.OrderDate = now
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, status, shipping_address, receiver_name, receiver_phone, total_amount, order_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		order.UserID,
		order.Status,
		order.ShippingAddress,
		order.ReceiverName,
		order.ReceiverPhone,
		order.TotalAmount,
		now,
		now,
		now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			"UPDATE products SET sold_quantity = sold_quantity + $1, updated_at = $2 WHERE id = $3",
			item.Quantity, now, item.ProductID)
		if err != nil {
			return err
		}
	}

	if _, err = tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockCartLines reads the cart's lines with their current product name and
// price, holding row locks on the lines until the transaction settles.
func lockCartLines(ctx context.Context, tx pgx.Tx, cartID int) ([]models.CartItem, error) {
	rows, err := tx.Query(ctx,
		`SELECT ci.product_id, ci.quantity, p.name, p.price
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.id
		 FOR UPDATE OF ci`,
		cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []models.CartItem{}
	for rows.Next() {
		var line models.CartItem
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.ProductName, &line.ProductPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// orderLinesFrom copies cart lines into order lines with frozen prices and
// returns them with the order total.
func orderLinesFrom(lines []models.CartItem) ([]models.OrderItem, float64) {
	items := make([]models.OrderItem, 0, len(lines))
	total := 0.0

	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.ProductPrice,
		})
		total += line.ProductPrice * float64(line.Quantity)
	}

	return items, total
}

func (r *OrderRepository) FindByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, shipping_address, receiver_name, receiver_phone,
		       total_amount, order_date, created_at, updated_at
		FROM orders WHERE id = $1
	`

	order := &models.Order{}
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.ShippingAddress,
		&order.ReceiverName,
		&order.ReceiverPhone,
		&order.TotalAmount,
		&order.OrderDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Items, err = r.itemsFor(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	return r.findAll(ctx, models.OrderFilter{UserID: &userID}, page, limit)
}

func (r *OrderRepository) FindAll(ctx context.Context, filter models.OrderFilter, page, limit int) ([]models.Order, int, error) {
	return r.findAll(ctx, filter, page, limit)
}

func (r *OrderRepository) findAll(ctx context.Context, filter models.OrderFilter, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	addCondition := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIndex))
		args = append(args, arg)
		argIndex++
	}

	if filter.UserID != nil {
		addCondition("user_id = $%d", *filter.UserID)
	}
	if filter.Status != "" {
		addCondition("status = $%d", filter.Status)
	}
	if filter.StartDate != nil {
		addCondition("order_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("order_date <= $%d", *filter.EndDate)
	}
	if filter.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(receiver_name ILIKE $%d OR CAST(id AS TEXT) LIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, status, shipping_address, receiver_name, receiver_phone,
		       total_amount, order_date, created_at, updated_at
		FROM orders` + where + fmt.Sprintf(" ORDER BY order_date DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.ShippingAddress,
			&o.ReceiverName,
			&o.ReceiverPhone,
			&o.TotalAmount,
			&o.OrderDate,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		orders[i].Items, err = r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	result, err := config.DB.Exec(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), orderID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order not found: %d", orderID)
	}

	return nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, price
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
