package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/service"
	"github.com/pageza/larder/backend/internal/testhelpers"
	"github.com/pageza/larder/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPantryCRUD(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "cook")
	svc := service.NewPantryService(db)
	ctx := context.Background()

	expires, err := models.ParseDate("2026-11-03")
	require.NoError(t, err)

	for _, name := range []string{"rice", "butter", "onion"} {
		req := &types.PantryItemRequest{IngredientName: name, Quantity: qty("1.5"), Unit: "kg"}
		if name == "butter" {
			req.StorageLocation = "fridge"
			req.ExpiresOn = &expires
		}
		_, err := svc.CreateItem(ctx, user.ID, req)
		require.NoError(t, err)
	}

	items, err := svc.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "butter", items[0].IngredientName)
	assert.Equal(t, "onion", items[1].IngredientName)
	assert.Equal(t, "rice", items[2].IngredientName)
	assert.Equal(t, "fridge", items[0].StorageLocation)
	require.NotNil(t, items[0].ExpiresOn)
	assert.Equal(t, "2026-11-03", items[0].ExpiresOn.String())
	assert.False(t, items[0].CreatedAt.IsZero())

	butter := items[0]
	got, err := svc.GetItem(ctx, user.ID, butter.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.RequireFromString("1.5")))

	patched, err := svc.UpdateItem(ctx, user.ID, butter.ID, &types.PantryItemPatch{Quantity: qty("0.25")}, true)
	require.NoError(t, err)
	assert.True(t, patched.Quantity.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, "butter", patched.IngredientName)
	assert.Equal(t, "fridge", patched.StorageLocation)

	require.NoError(t, svc.DeleteItem(ctx, user.ID, butter.ID))
	_, err = svc.GetItem(ctx, user.ID, butter.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestPantryCreateWithoutQuantityWritesNothing(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "cook")
	svc := service.NewPantryService(db)

	_, err := svc.CreateItem(context.Background(), user.ID, &types.PantryItemRequest{
		IngredientName: "flour",
		Unit:           "g",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidRequest))
	assert.Equal(t, []string{"this field is required"}, err.(*apperror.Error).Fields["quantity"])

	var count int64
	require.NoError(t, db.Model(&models.PantryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPantryFullUpdateRequiresCoreFields(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "cook")
	svc := service.NewPantryService(db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, user.ID, &types.PantryItemRequest{IngredientName: "oats", Quantity: qty("500"), Unit: "g"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, user.ID, item.ID, &types.PantryItemPatch{Unit: strPtr("kg")}, false)
	require.Error(t, err)
	fields := err.(*apperror.Error).Fields
	assert.Contains(t, fields, "ingredient_name")
	assert.Contains(t, fields, "quantity")
	assert.NotContains(t, fields, "unit")

	updated, err := svc.UpdateItem(ctx, user.ID, item.ID, &types.PantryItemPatch{
		IngredientName: strPtr("rolled oats"),
		Quantity:       qty("0.5"),
		Unit:           strPtr("kg"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "rolled oats", updated.IngredientName)
	assert.Equal(t, "kg", updated.Unit)
}

func TestPantryOwnershipIsNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	owner := testhelpers.CreateUser(t, db, "owner")
	intruder := testhelpers.CreateUser(t, db, "intruder")
	svc := service.NewPantryService(db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, owner.ID, &types.PantryItemRequest{IngredientName: "eggs", Quantity: qty("12"), Unit: "pc"})
	require.NoError(t, err)

	for _, id := range []uuid.UUID{item.ID, uuid.New()} {
		_, err = svc.GetItem(ctx, intruder.ID, id)
		assert.Equal(t, apperror.NotFound("pantry item"), err)

		_, err = svc.UpdateItem(ctx, intruder.ID, id, &types.PantryItemPatch{Quantity: qty("0")}, true)
		assert.Equal(t, apperror.NotFound("pantry item"), err)

		assert.Equal(t, apperror.NotFound("pantry item"), svc.DeleteItem(ctx, intruder.ID, id))
	}

	list, err := svc.ListItems(ctx, intruder.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := svc.GetItem(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(12)))
}
