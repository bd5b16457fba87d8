package model

import (
	"time"

	"gorm.io/datatypes"
)

type MenuItem struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuID       int64  `gorm:"not null;index" json:"menu_id"`
	RestaurantID int64  `gorm:"not null;index" json:"restaurant_id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`

	// 価格は最小通貨単位（centなど）
	Price int64 `gorm:"not null" json:"price"`

	Description string                        `gorm:"type:text" json:"description"`
	Category    string                        `gorm:"type:varchar(100);not null;index" json:"category"`
	ImageURL    string                        `gorm:"type:text" json:"image_url"`
	DietaryTags datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"dietary_tags"`
	IsPopular   bool                          `gorm:"not null;default:false" json:"is_popular"`
	SortOrder   int                           `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool                          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time                     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
