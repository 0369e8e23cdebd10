package domain

import (
	"time"

	"github.com/google/uuid"
)

type PortfolioItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `gorm:"size:512" json:"image_url,omitempty"`
	Link        *string   `gorm:"size:512" json:"link,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_item" }
