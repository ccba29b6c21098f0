package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pageza/larder/backend/internal/database"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipe(t *testing.T, db *gorm.DB) (*models.User, *models.Recipe) {
	t.Helper()
	user := testhelpers.CreateUser(t, db, "cascade")
	recipe := &models.Recipe{
		UserID:      user.ID,
		Title:       "Soup",
		YieldAmount: models.DefaultYieldAmount,
		Ingredients: []models.RecipeIngredient{
			{IngredientName: "leek", Quantity: decimal.RequireFromString("2.00")},
		},
		Steps: []models.RecipeStep{
			{StepNumber: 1, Description: "chop"},
		},
	}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&models.PantryItem{
		UserID: user.ID, IngredientName: "salt", Quantity: decimal.NewFromInt(1), Unit: "kg",
	}).Error)
	return user, recipe
}

func assertCascade(t *testing.T, db *gorm.DB) {
	t.Helper()
	user, recipe := seedRecipe(t, db)

	require.NoError(t, db.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.RecipeStep{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)
	require.NoError(t, db.Model(&models.PantryItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSQLiteCascadeDelete(t *testing.T) {
	assertCascade(t, testhelpers.SetupTestDB(t))
}

func TestPostgresMigrationsCascadeDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupPostgres(t)
	assertCascade(t, db)

	// Applying the migrations again is a no-op.
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir(t)))
	var applied int64
	require.NoError(t, db.Table(database.MigrationsTable).Count(&applied).Error)
	assert.EqualValues(t, 1, applied)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_pantry.sql", "001_init.sql", "001_init_rollback.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0o700))

	files, err := database.MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_pantry.sql"}, files)
	assert.Equal(t, "001_init_rollback.sql", database.RollbackFile("001_init.sql"))

	_, err = database.MigrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:larder.db?_foreign_keys=1&_busy_timeout=5000", database.SQLiteDSN("larder.db"))
}
