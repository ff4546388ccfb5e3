package database

import (
	"context"
	"database/sql"
	"fmt"

	"messenger-api/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migration commands understood by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)

// Migrate runs the embedded goose migrations against pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	if pool == nil {
		return ErrNotInitialized
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case MigrateUp:
		return goose.UpContext(ctx, db, ".")
	case MigrateDown:
		return goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		return goose.StatusContext(ctx, db, ".")
	case MigrateReset:
		return reset(ctx, db)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

func reset(ctx context.Context, db *sql.DB) error {
	if err := goose.ResetContext(ctx, db, "."); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Truncate empties every table and restarts identities.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return ErrNotInitialized
	}
	_, err := pool.Exec(ctx, `TRUNCATE blocked_users, messages, chat_participants, chats, users RESTART IDENTITY CASCADE`)
	return err
}
