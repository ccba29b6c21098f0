package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/types"
	"github.com/pageza/larder/backend/internal/validation"
	"gorm.io/gorm"
)

// PantryService handles pantry item operations scoped to their owner.
type PantryService struct {
	db *gorm.DB
}

// NewPantryService creates a new PantryService instance
func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// ListItems returns the user's pantry ordered by ingredient name.
func (s *PantryService) ListItems(ctx context.Context, userID uuid.UUID) ([]types.PantryItemResponse, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ingredient_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, storageError(ctx, "failed to list pantry items", err, "user_id", userID)
	}

	out := make([]types.PantryItemResponse, len(items))
	for i := range items {
		out[i] = toPantryItemResponse(&items[i])
	}
	return out, nil
}

// GetItem retrieves a pantry item by ID
func (s *PantryService) GetItem(ctx context.Context, userID, id uuid.UUID) (*types.PantryItemResponse, error) {
	item, err := findPantryItem(s.db.WithContext(ctx), userID, id)
	if err != nil {
		return nil, err
	}
	resp := toPantryItemResponse(item)
	return &resp, nil
}

// CreateItem creates a new pantry item owned by userID
func (s *PantryService) CreateItem(ctx context.Context, userID uuid.UUID, req *types.PantryItemRequest) (*types.PantryItemResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	item := models.PantryItem{
		UserID:          userID,
		IngredientName:  req.IngredientName,
		Quantity:        *req.Quantity,
		Unit:            req.Unit,
		StorageLocation: req.StorageLocation,
		ExpiresOn:       req.ExpiresOn,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storageError(ctx, "failed to create pantry item", err, "user_id", userID)
	}

	resp := toPantryItemResponse(&item)
	return &resp, nil
}

// UpdateItem overwrites the fields present in patch. When partial is false
// ingredient_name, quantity and unit must all be present.
func (s *PantryService) UpdateItem(ctx context.Context, userID, id uuid.UUID, patch *types.PantryItemPatch, partial bool) (*types.PantryItemResponse, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if !partial {
		fields := apperror.FieldErrors{}
		validation.Require(fields, "ingredient_name", patch.IngredientName != nil)
		validation.Require(fields, "quantity", patch.Quantity != nil)
		validation.Require(fields, "unit", patch.Unit != nil)
		if len(fields) > 0 {
			return nil, apperror.Validation(fields)
		}
	}

	var item *models.PantryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findPantryItem(tx, userID, id)
		if err != nil {
			return err
		}
		if updates := pantryUpdates(patch); len(updates) > 0 {
			if err := tx.Model(found).Updates(updates).Error; err != nil {
				return err
			}
		}
		item, err = findPantryItem(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, storageError(ctx, "failed to update pantry item", err, "user_id", userID, "pantry_item_id", id)
	}

	resp := toPantryItemResponse(item)
	return &resp, nil
}

// DeleteItem deletes a pantry item
func (s *PantryService) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PantryItem{})
	if res.Error != nil {
		return storageError(ctx, "failed to delete pantry item", res.Error, "user_id", userID, "pantry_item_id", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("pantry item")
	}

	slog.InfoContext(ctx, "pantry item deleted", "user_id", userID, "pantry_item_id", id)
	return nil
}

func findPantryItem(db *gorm.DB, userID, id uuid.UUID) (*models.PantryItem, error) {
	var item models.PantryItem
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("pantry item")
		}
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to load pantry item", err)
	}
	return &item, nil
}

func pantryUpdates(patch *types.PantryItemPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.IngredientName != nil {
		updates["ingredient_name"] = *patch.IngredientName
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Unit != nil {
		updates["unit"] = *patch.Unit
	}
	if patch.StorageLocation != nil {
		updates["storage_location"] = *patch.StorageLocation
	}
	if patch.ExpiresOn != nil {
		updates["expires_on"] = *patch.ExpiresOn
	}
	return updates
}

func toPantryItemResponse(item *models.PantryItem) types.PantryItemResponse {
	return types.PantryItemResponse{
		ID:              item.ID,
		IngredientName:  item.IngredientName,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		StorageLocation: item.StorageLocation,
		ExpiresOn:       item.ExpiresOn,
		CreatedAt:       item.CreatedAt,
	}
}
