package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/shopspring/decimal"
)

// PantryItemRequest represents the request body for creating or replacing a pantry item
type PantryItemRequest struct {
	IngredientName  string           `json:"ingredient_name" validate:"required,notblank,max=100"`
	Quantity        *decimal.Decimal `json:"quantity" validate:"required,quantity"`
	Unit            string           `json:"unit" validate:"required,notblank,max=20"`
	StorageLocation string           `json:"storage_location" validate:"max=50"`
	ExpiresOn       *models.Date     `json:"expires_on"`
}

// PantryItemPatch represents a partial pantry item update; nil fields are left untouched.
type PantryItemPatch struct {
	IngredientName  *string          `json:"ingredient_name" validate:"omitempty,notblank,max=100"`
	Quantity        *decimal.Decimal `json:"quantity" validate:"omitempty,quantity"`
	Unit            *string          `json:"unit" validate:"omitempty,notblank,max=20"`
	StorageLocation *string          `json:"storage_location" validate:"omitempty,max=50"`
	ExpiresOn       *models.Date     `json:"expires_on"`
}

type PantryItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	IngredientName  string          `json:"ingredient_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	StorageLocation string          `json:"storage_location"`
	ExpiresOn       *models.Date    `json:"expires_on"`
	CreatedAt       time.Time       `json:"created_at"`
}
