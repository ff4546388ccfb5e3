package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"messenger-api/config"
	"messenger-api/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

const usage = `
Messenger API - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all pending migrations
  down        Roll back the latest migration
  status      Show applied and pending migrations
  seed-dev    Seed with development/test data
  reset       Roll back every migration and re-apply (DANGEROUS)
  truncate    Truncate all tables (DANGEROUS)

Flags:
  -password string   Password for seeded users (default "Test@123!")
  -users int         Number of seeded users (default 6)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go down
  go run cmd/migrate/main.go reset
`

func main() {
	seedDefaults := database.DefaultSeedConfig()
	password := flag.String("password", seedDefaults.Password, "Password for seeded users")
	userCount := flag.Int("users", seedDefaults.TestUserCount, "Number of seeded users")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	ctx := context.Background()
	cfg := config.LoadConfig()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	switch command {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
		runMigrate(ctx, pool, command)
	case "seed-dev":
		runSeedDevelopment(ctx, pool, &database.SeedConfig{Password: *password, TestUserCount: *userCount})
	case database.MigrateReset:
		runReset(ctx, pool)
	case "truncate":
		runTruncate(ctx, pool)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		pool.Close()
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, pool *pgxpool.Pool, command string) {
	log.Printf("Running migrations %s...", command)

	if err := database.Migrate(ctx, pool, command); err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}

	log.Printf("Migrations %s completed", command)
}

func runSeedDevelopment(ctx context.Context, pool *pgxpool.Pool, cfg *database.SeedConfig) {
	log.Println("Seeding database (development mode)...")

	result, err := database.Seed(ctx, pool, cfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed Summary:")
	for username, id := range result.UserIDs {
		log.Printf("   - %s (ID: %d)", username, id)
	}
	log.Printf("   - Chats: %d", len(result.ChatIDs))
	log.Printf("   - Messages: %d", result.Messages)
	log.Printf("   - New block edges: %d", result.Blocks)
}

func runReset(ctx context.Context, pool *pgxpool.Pool) {
	log.Println("WARNING: This will DROP all tables and re-run migrations!")
	log.Println("Press Ctrl+C within 5 seconds to cancel...")
	time.Sleep(5 * time.Second)

	if err := database.Migrate(ctx, pool, database.MigrateReset); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Println("Database reset completed!")
}

func runTruncate(ctx context.Context, pool *pgxpool.Pool) {
	log.Println("WARNING: This will TRUNCATE all tables!")

	if err := database.Truncate(ctx, pool); err != nil {
		log.Fatalf("Truncate failed: %v", err)
	}

	log.Println("All tables truncated!")
}
