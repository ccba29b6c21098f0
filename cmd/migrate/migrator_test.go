package main

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/larder/backend/internal/testhelpers"
)

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow("SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigratorUpAndRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db, err := sql.Open("postgres", testhelpers.StartPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	m := &migrator{db: db, dir: testhelpers.MigrationsDir(t)}

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.True(t, tableExists(t, db, "recipes"))
	assert.True(t, tableExists(t, db, "pantry_items"))

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied, "a second run applies nothing")

	name, err := m.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, "001_init.sql", name)
	assert.False(t, tableExists(t, db, "recipes"))

	_, err = m.Rollback(ctx)
	assert.ErrorIs(t, err, ErrNothingToRollback)
}

func TestNewAppRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	err := newApp().Run(context.Background(), []string{"migrate", "up"})
	assert.Error(t, err)
}
