package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"techstore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
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

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
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

// createSchema creates the database schema for testing. It mirrors
// migrations/000001_init.up.sql.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id              UUID PRIMARY KEY,
			name            TEXT NOT NULL,
			email           TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL DEFAULT '',
			is_admin        BOOLEAN NOT NULL DEFAULT FALSE,
			token           TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_token ON users (token) WHERE token <> '';

		CREATE TABLE IF NOT EXISTS products (
			id              UUID PRIMARY KEY,
			name            TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			price           DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			category        TEXT NOT NULL DEFAULT 'General',
			image           TEXT NOT NULL DEFAULT '',
			images          JSONB NOT NULL DEFAULT '[]',
			stock           INTEGER NOT NULL DEFAULT 10,
			keywords        JSONB NOT NULL DEFAULT '[]',
			options         JSONB NOT NULL DEFAULT '[]',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);

		CREATE TABLE IF NOT EXISTS orders (
			id              UUID PRIMARY KEY,
			user_id         UUID NOT NULL REFERENCES users (id),
			items           JSONB NOT NULL,
			total           DOUBLE PRECISION NOT NULL CHECK (total >= 0),
			shipping_fee    DOUBLE PRECISION NOT NULL DEFAULT 0,
			shipping        JSONB NOT NULL DEFAULT '{}',
			status          TEXT NOT NULL DEFAULT 'processing'
			                CHECK (status IN ('processing', 'shipped', 'delivered', 'cancelled')),
			payment_method  TEXT NOT NULL DEFAULT 'COD',
			is_paid         BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at         TIMESTAMPTZ,
			delivered_at    TIMESTAMPTZ,
			tracking_number TEXT NOT NULL DEFAULT '',
			notes           TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedUser inserts a user with the given token and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name, email, token string, isAdmin bool) *model.User {
	t.Helper()

	ctx := context.Background()
	user := &model.User{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Token:   token,
		IsAdmin: isAdmin,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, is_admin, token) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.IsAdmin, user.Token,
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return user
}

// SeedProducts inserts test catalogue data and returns the products.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{
			ID:          uuid.New(),
			Name:        "Wireless Mouse Pro",
			Description: "Ergonomic wireless mouse",
			Price:       990,
			Category:    "Electronics",
			Stock:       25,
			Images:      []string{},
			Keywords:    []string{"mouse", "wireless"},
			Options: []model.ProductOption{
				{
					Name: "Color",
					Values: []model.OptionValue{
						{Label: "Black", PriceDelta: 0},
						{Label: "Blue", PriceDelta: 50},
					},
				},
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Mechanical Keyboard Lite",
			Description: "Tenkeyless mechanical keyboard",
			Price:       3490,
			Category:    "Electronics",
			Stock:       12,
			Images:      []string{},
			Keywords:    []string{"keyboard"},
			Options:     []model.ProductOption{},
		},
	}

	for i := range products {
		p := &products[i]
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category, stock, images, keywords, options)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Images, p.Keywords, p.Options,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
	}

	return products
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
