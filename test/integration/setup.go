package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			discount_price NUMERIC(10,2),
			category TEXT NOT NULL,
			label TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS addresses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			street_address TEXT NOT NULL,
			apartment_address TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL,
			zip TEXT NOT NULL,
			address_type TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS idx_addresses_user_type ON addresses(user_id, address_type);

		CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			amount NUMERIC(10,2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			charge_id TEXT NOT NULL,
			user_id UUID NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			ordered BOOLEAN NOT NULL DEFAULT FALSE,
			start_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ordered_date TIMESTAMPTZ,
			shipping_address_id UUID REFERENCES addresses(id),
			billing_address_id UUID REFERENCES addresses(id),
			coupon_id UUID REFERENCES coupons(id),
			payment_id UUID REFERENCES payments(id),
			ref_code TEXT UNIQUE,
			refund_requested BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE UNIQUE INDEX IF NOT EXISTS orders_one_open_per_user
			ON orders(user_id) WHERE NOT ordered;

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			item_id UUID NOT NULL REFERENCES items(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			ordered BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (order_id, item_id)
		);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);

		CREATE TABLE IF NOT EXISTS refunds (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			email TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			accepted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalogue inserts test items and returns them keyed by slug.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) map[string]model.Item {
	t.Helper()

	ctx := context.Background()

	discounted := decimal.RequireFromString("15.00")
	items := []model.Item{
		{
			ID:            uuid.New(),
			Title:         "Blue Shirt",
			Price:         decimal.RequireFromString("20.00"),
			DiscountPrice: &discounted,
			Category:      model.CategoryShirt,
			Label:         model.LabelPrimary,
			Slug:          "blue-shirt",
			Description:   "A blue shirt",
			CreatedAt:     time.Now(),
		},
		{
			ID:          uuid.New(),
			Title:       "Winter Jacket",
			Price:       decimal.RequireFromString("50.00"),
			Category:    model.CategoryOuterwear,
			Label:       model.LabelSecondary,
			Slug:        "winter-jacket",
			Description: "A warm jacket",
			CreatedAt:   time.Now(),
		},
		{
			ID:          uuid.New(),
			Title:       "Track Pants",
			Price:       decimal.RequireFromString("35.00"),
			Category:    model.CategorySportwear,
			Label:       model.LabelDanger,
			Slug:        "track-pants",
			Description: "Comfortable track pants",
			CreatedAt:   time.Now(),
		},
	}

	query := `
		INSERT INTO items (id, title, price, discount_price, category, label,
		                   slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	bySlug := make(map[string]model.Item, len(items))
	for _, item := range items {
		_, err := pool.Exec(ctx, query, item.ID, item.Title, item.Price,
			item.DiscountPrice, item.Category, item.Label, item.Slug,
			item.Description, item.CreatedAt)
		if err != nil {
			t.Fatalf("failed to seed item %s: %v", item.Slug, err)
		}
		bySlug[item.Slug] = item
	}

	return bySlug
}

// SeedCoupons inserts test coupons.
func SeedCoupons(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		"INSERT INTO coupons (id, code, amount) VALUES ($1, $2, $3)",
		uuid.New(), "SAVE10", decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("failed to seed coupon: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"refunds", "order_items", "orders", "payments", "addresses", "coupons", "items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
