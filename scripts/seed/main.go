// Command seed populates a development database with demo users and
// products. It wipes existing rows first; never point it at production.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"techstore/internal/config"
	"techstore/internal/database"
	"techstore/internal/model"
	"techstore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := context.Background()

	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `TRUNCATE orders, products, users`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	now := time.Now()
	userRepo := repository.NewUserRepository(pool, logger)

	users := []model.User{
		{ID: uuid.New(), Name: "Admin", Email: "admin@techstore.test", IsAdmin: true, Token: "admin-dev-token", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Demo User", Email: "user@techstore.test", IsAdmin: false, Token: "user-dev-token", CreatedAt: now, UpdatedAt: now},
	}
	for i := range users {
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Email, err)
		}
	}

	productRepo := repository.NewProductRepository(pool, logger)

	products := []model.Product{
		{
			ID:          uuid.New(),
			Name:        "Wireless Mouse Pro",
			Description: "Ergonomic 2.4G wireless mouse with silent clicks.",
			Price:       990,
			Category:    "Accessories",
			Keywords:    []string{"mouse", "wireless", "peripheral"},
			Image:       "/images/mouse.jpg",
			Images:      []string{},
			Stock:       25,
			Options: []model.ProductOption{
				{Name: "Color", Values: []model.OptionValue{
					{Label: "Black", PriceDelta: 0},
					{Label: "Blue", PriceDelta: 50},
				}},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID:          uuid.New(),
			Name:        "Mechanical Keyboard Lite",
			Description: "Compact 87-key mechanical keyboard with blue switches.",
			Price:       3490,
			Category:    "Accessories",
			Keywords:    []string{"keyboard", "mechanical", "gaming"},
			Image:       "/images/keyboard.jpg",
			Images:      []string{},
			Stock:       15,
			Options: []model.ProductOption{
				{Name: "Switch", Values: []model.OptionValue{
					{Label: "Blue", PriceDelta: 0},
					{Label: "Brown", PriceDelta: 200},
					{Label: "Red", PriceDelta: 200},
				}},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID:          uuid.New(),
			Name:        "Noise-Cancelling Headphones",
			Description: "Over-ear ANC headphones, 30h battery, Type-C.",
			Price:       5990,
			Category:    "Audio",
			Keywords:    []string{"headphones", "ANC", "audio"},
			Image:       "/images/headphones.jpg",
			Images:      []string{},
			Stock:       12,
			Options:     []model.ProductOption{},
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ID:          uuid.New(),
			Name:        "1080p USB Webcam",
			Description: "Full HD webcam with dual mics and privacy shutter.",
			Price:       2490,
			Category:    "Cameras",
			Keywords:    []string{"webcam", "camera", "video"},
			Image:       "/images/webcam.jpg",
			Images:      []string{},
			Stock:       20,
			Options:     []model.ProductOption{},
			CreatedAt:   now, UpdatedAt: now,
		},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}

	logger.Info().
		Int("users", len(users)).
		Int("products", len(products)).
		Msg("seeded users & products")

	return nil
}
