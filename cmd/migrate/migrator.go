package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pageza/larder/backend/internal/database"
)

// ErrNothingToRollback is returned when no migration has been applied.
var ErrNothingToRollback = errors.New("no migrations to roll back")

type migrator struct {
	db  *sql.DB
	dir string
}

// Up applies pending migrations in name order and returns how many ran.
func (m *migrator) Up(ctx context.Context) (int, error) {
	files, err := database.MigrationFiles(m.dir)
	if err != nil {
		return 0, err
	}
	if _, err := m.db.ExecContext(ctx, database.CreateMigrationsTableSQL); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := 0
	for _, name := range files {
		var exists bool
		err := m.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		err = m.inTx(ctx, name, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
			return err
		})
		if err != nil {
			return applied, err
		}
		slog.Info("applied migration", "name", name)
		applied++
	}
	return applied, nil
}

// Rollback reverts the newest applied migration using its _rollback file.
func (m *migrator) Rollback(ctx context.Context) (string, error) {
	if _, err := m.db.ExecContext(ctx, database.CreateMigrationsTableSQL); err != nil {
		return "", fmt.Errorf("failed to create migrations table: %w", err)
	}

	var name string
	err := m.db.QueryRowContext(ctx,
		"SELECT name FROM schema_migrations ORDER BY applied_at DESC, id DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNothingToRollback
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	err = m.inTx(ctx, database.RollbackFile(name), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE name = $1", name)
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// inTx runs the SQL in file and then record in a single transaction.
func (m *migrator) inTx(ctx context.Context, file string, record func(*sql.Tx) error) error {
	content, err := os.ReadFile(filepath.Join(m.dir, file))
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute %s: %w", file, err)
	}
	if err := record(tx); err != nil {
		return fmt.Errorf("failed to record %s: %w", file, err)
	}
	return tx.Commit()
}
