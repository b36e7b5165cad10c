package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/funfair-pos/api/internal/config"
	"github.com/funfair-pos/api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type starterItem struct {
	name  string
	price string
}

var starterMenu = []starterItem{
	{"Burger", "5.00"},
	{"Cheeseburger", "5.50"},
	{"Corn Dog", "3.50"},
	{"Fries", "2.00"},
	{"Cotton Candy", "2.50"},
	{"Lemonade", "2.25"},
}

func main() {
	// CLI flags
	force := flag.Bool("force", false, "Seed even if the menu already has items")
	flag.Parse()

	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction: the whole menu or nothing
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	created, err := seedMenu(ctx, tx, *force)
	if err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Printf("Seed completed successfully (%d menu items created)", created)
}

// seedMenu inserts the starter menu unless the catalog already has items.
func seedMenu(ctx context.Context, tx pgx.Tx, force bool) (int, error) {
	q := database.New(tx)

	existing, err := q.ListMenuItems(ctx, pgtype.Bool{})
	if err != nil {
		return 0, fmt.Errorf("list menu items: %w", err)
	}
	if len(existing) > 0 && !force {
		log.Printf("Menu already has %d items, skipping (use -force to add anyway)", len(existing))
		return 0, nil
	}

	for _, item := range starterMenu {
		var price pgtype.Numeric
		if err := price.Scan(decimal.RequireFromString(item.price).StringFixed(2)); err != nil {
			return 0, fmt.Errorf("price for %s: %w", item.name, err)
		}

		row, err := q.CreateMenuItem(ctx, database.CreateMenuItemParams{
			Name:      item.name,
			UnitPrice: price,
		})
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", item.name, err)
		}
		log.Printf("Created menu item '%s' (ID: %d)", row.Name, row.ID)
	}
	return len(starterMenu), nil
}
