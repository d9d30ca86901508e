package config

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/matthewhartstonge/argon2"
)

type seedProduct struct {
	name        string
	description string
	brand       string
	category    string
	price       float64
	image       string
}

var seedProducts = []seedProduct{
	{"Nova X1 Laptop", "14-inch ultrabook with 16GB RAM and 512GB SSD", "Nova", "Laptops", 1299.00, "images/seed/nova-x1.webp"},
	{"Pixelwave Phone 9", "6.1-inch OLED smartphone, 128GB", "Pixelwave", "Phones", 799.00, "images/seed/pixelwave-9.webp"},
	{"Sonor Buds Pro", "Wireless earbuds with active noise cancelling", "Sonor", "Audio", 149.00, "images/seed/sonor-buds.webp"},
	{"Vireo 27 Monitor", "27-inch 144Hz QHD display", "Vireo", "Monitors", 329.00, "images/seed/vireo-27.webp"},
	{"Clackr MX Keyboard", "Hot-swappable mechanical keyboard", "Clackr", "Accessories", 119.00, "images/seed/clackr-mx.webp"},
}

// SeedDatabase creates the default admin account and a handful of demo
// products. Safe to run repeatedly: existing rows are left untouched.
func SeedDatabase() error {
	ctx := context.Background()

	argon := argon2.DefaultConfig()
	hash, err := argon.HashEncoded([]byte(getEnv("SEED_ADMIN_PASSWORD", "admin123")))
	if err != nil {
		return err
	}

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@tech-shop.local")

	tag, err := DB.Exec(ctx, `
		INSERT INTO users (name, email, password, role, gender, created_by, updated_by)
		VALUES ($1, $2, $3, 'ADMIN', 'OTHER', 'seed', 'seed')
		ON CONFLICT (email) DO NOTHING`,
		"Administrator", adminEmail, string(hash),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		log.Printf("Seeded admin account %s", adminEmail)
	}

	for _, p := range seedProducts {
		var productID int
		err := DB.QueryRow(ctx, `
			INSERT INTO products (name, short_description, detailed_description, brand, category, price)
			SELECT $1, $2, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
			RETURNING id`,
			p.name, p.description, p.brand, p.category, p.price,
		).Scan(&productID)
		if errors.Is(err, pgx.ErrNoRows) {
			// No row returned means the product already exists.
			continue
		}
		if err != nil {
			return err
		}

		if _, err := DB.Exec(ctx, `
			INSERT INTO product_images (product_id, url, position) VALUES ($1, $2, 0)`,
			productID, p.image,
		); err != nil {
			return err
		}
	}

	log.Println("Database seeding complete")
	return nil
}
