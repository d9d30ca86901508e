package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tech-shop/config"
	"tech-shop/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create inserts a user. The acting principal is recorded explicitly; for
// self-registration the actor is the user's own email.
func (r *UserRepository) Create(ctx context.Context, user *models.User, actor string) error {
	query := `
		INSERT INTO users (name, email, password, role, gender, avatar, phone, address, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	if user.Avatar == "" {
		user.Avatar = "avatar-default.webp"
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor

	return config.DB.QueryRow(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.Gender,
		user.Avatar,
		user.Phone,
		user.Address,
		now,
		now,
		actor,
		actor,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepository) findOne(ctx context.Context, cond string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, name, email, password, role, gender, avatar, phone, address,
		       created_at, updated_at, COALESCE(created_by, ''), COALESCE(updated_by, '')
		FROM users WHERE ` + cond

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Gender,
		&user.Avatar,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.CreatedBy,
		&user.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, name, email, role string, page, limit int) ([]models.User, int, error) {
	offset := (page - 1) * limit

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+name+"%")
		argIndex++
	}
	if email != "" {
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", argIndex))
		args = append(args, "%"+email+"%")
		argIndex++
	}
	if role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIndex))
		args = append(args, role)
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, role, gender, avatar, phone, address, created_at, updated_at
		FROM users` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.Gender,
			&user.Avatar,
			&user.Phone,
			&user.Address,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *models.User, actor string) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, gender = $4, avatar = $5,
		    phone = $6, address = $7, updated_at = $8, updated_by = $9
		WHERE id = $10
	`

	result, err := config.DB.Exec(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Role,
		user.Gender,
		user.Avatar,
		user.Phone,
		user.Address,
		time.Now(),
		actor,
		user.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %d", user.ID)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword, actor string) error {
	query := `UPDATE users SET password = $1, updated_at = $2, updated_by = $3 WHERE id = $4`
	_, err := config.DB.Exec(ctx, query, hashedPassword, time.Now(), actor, userID)
	return err
}

// Delete removes the user row. Carts, cart items, orders and reset tokens
// are removed by the schema's ON DELETE CASCADE rules.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	result, err := config.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return errors.New("user not found")
	}

	return nil
}
