package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultYieldAmount is used when a recipe is created without a yield.
const DefaultYieldAmount = 4

type Recipe struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"-"`
	Title           string             `gorm:"size:200;not null" json:"title"`
	YieldAmount     int                `gorm:"not null" json:"yield_amount"`
	PrepTimeMinutes *int               `json:"prep_time_minutes"`
	CookTimeMinutes *int               `json:"cook_time_minutes"`
	Instructions    string             `gorm:"type:text;not null;default:''" json:"instructions"`
	ChefNotes       string             `gorm:"type:text;not null;default:''" json:"chef_notes"`
	Photo           *string            `gorm:"size:512" json:"photo"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Ingredients     []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps           []RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient has no ordering among its siblings.
type RecipeIngredient struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	IngredientName string          `gorm:"size:100;not null" json:"ingredient_name"`
	Quantity       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"quantity"`
	Unit           string          `gorm:"size:20;not null;default:''" json:"unit"`
	PrepNote       string          `gorm:"size:100;not null;default:''" json:"prep_note"`
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// RecipeStep is always read back ordered by StepNumber. Numbers are neither
// unique nor contiguous.
type RecipeStep struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	StepNumber   int       `gorm:"not null" json:"step_number"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	TimerSeconds *int      `json:"timer_seconds"`
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
