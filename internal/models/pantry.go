package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PantryItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	IngredientName  string          `gorm:"size:100;not null" json:"ingredient_name"`
	Quantity        decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"quantity"`
	Unit            string          `gorm:"size:20;not null" json:"unit"`
	StorageLocation string          `gorm:"size:50;not null;default:''" json:"storage_location"`
	ExpiresOn       *Date           `json:"expires_on"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
