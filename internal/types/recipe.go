package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientInput is one ingredient of a create or update payload.
type IngredientInput struct {
	IngredientName string           `json:"ingredient_name" validate:"required,notblank,max=100"`
	Quantity       *decimal.Decimal `json:"quantity" validate:"required,quantity"`
	Unit           string           `json:"unit" validate:"max=20"`
	PrepNote       string           `json:"prep_note" validate:"max=100"`
}

// StepInput is one step of a create or update payload.
type StepInput struct {
	StepNumber   *int   `json:"step_number" validate:"required"`
	Description  string `json:"description" validate:"required,notblank"`
	TimerSeconds *int   `json:"timer_seconds"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title           string            `json:"title" validate:"required,notblank,max=200"`
	YieldAmount     *int              `json:"yield_amount"`
	PrepTimeMinutes *int              `json:"prep_time_minutes"`
	CookTimeMinutes *int              `json:"cook_time_minutes"`
	Instructions    string            `json:"instructions"`
	ChefNotes       string            `json:"chef_notes"`
	Photo           *string           `json:"photo" validate:"omitempty,max=512"`
	Ingredients     []IngredientInput `json:"ingredients" validate:"dive"`
	Steps           []StepInput       `json:"steps" validate:"dive"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil fields are left untouched. A non-nil Ingredients or Steps pointer,
// even to an empty slice, replaces that whole child set.
type UpdateRecipeRequest struct {
	Title           *string            `json:"title" validate:"omitempty,notblank,max=200"`
	YieldAmount     *int               `json:"yield_amount"`
	PrepTimeMinutes *int               `json:"prep_time_minutes"`
	CookTimeMinutes *int               `json:"cook_time_minutes"`
	Instructions    *string            `json:"instructions"`
	ChefNotes       *string            `json:"chef_notes"`
	Photo           *string            `json:"photo" validate:"omitempty,max=512"`
	Ingredients     *[]IngredientInput `json:"ingredients" validate:"omitempty,dive"`
	Steps           *[]StepInput       `json:"steps" validate:"omitempty,dive"`
}

// RecipeSummary is the list representation of a recipe.
type RecipeSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	YieldAmount     int       `json:"yield_amount"`
	PrepTimeMinutes *int      `json:"prep_time_minutes"`
	CookTimeMinutes *int      `json:"cook_time_minutes"`
	Photo           *string   `json:"photo"`
	CreatedAt       time.Time `json:"created_at"`
}

type IngredientResponse struct {
	ID             uuid.UUID       `json:"id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	PrepNote       string          `json:"prep_note"`
}

type StepResponse struct {
	ID           uuid.UUID `json:"id"`
	StepNumber   int       `json:"step_number"`
	Description  string    `json:"description"`
	TimerSeconds *int      `json:"timer_seconds"`
}

// RecipeDetail is the full aggregate: steps are ordered by step number.
type RecipeDetail struct {
	ID              uuid.UUID            `json:"id"`
	Title           string               `json:"title"`
	YieldAmount     int                  `json:"yield_amount"`
	PrepTimeMinutes *int                 `json:"prep_time_minutes"`
	CookTimeMinutes *int                 `json:"cook_time_minutes"`
	Instructions    string               `json:"instructions"`
	ChefNotes       string               `json:"chef_notes"`
	Photo           *string              `json:"photo"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	Steps           []StepResponse       `json:"steps"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
