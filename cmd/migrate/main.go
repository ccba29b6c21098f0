// Command migrate applies or rolls back the SQL migrations against a
// Postgres database outside the API process.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"github.com/pageza/larder/backend/internal/logging"
)

func main() {
	logging.SetDefault("migrate", os.Getenv("LOG_LEVEL"))

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	databaseFlag := &cli.StringFlag{
		Name:     "database-url",
		Usage:    "Postgres connection URL",
		Sources:  cli.EnvVars("DATABASE_URL"),
		Required: true,
	}
	dirFlag := &cli.StringFlag{
		Name:    "dir",
		Usage:   "Directory holding NNN_name.sql and NNN_name_rollback.sql files",
		Value:   "migrations",
		Sources: cli.EnvVars("MIGRATIONS_DIR"),
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the larder database schema",
		Flags: []cli.Flag{databaseFlag, dirFlag},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply every pending migration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDB(ctx, cmd, func(m *migrator) error {
						applied, err := m.Up(ctx)
						if err != nil {
							return err
						}
						slog.Info("migrations complete", "applied", applied)
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "Revert the most recently applied migration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDB(ctx, cmd, func(m *migrator) error {
						name, err := m.Rollback(ctx)
						if err != nil {
							return err
						}
						slog.Info("rolled back migration", "name", name)
						return nil
					})
				},
			},
		},
	}
}

func withDB(ctx context.Context, cmd *cli.Command, fn func(*migrator) error) error {
	db, err := sql.Open("postgres", cmd.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return fn(&migrator{db: db, dir: cmd.String("dir")})
}
