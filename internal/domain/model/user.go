package model

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleKitchen Role = "KITCHEN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RestaurantID int64  `gorm:"not null;uniqueIndex:uq_users_restaurant_username"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_restaurant_username"`
	Email        string `gorm:"type:varchar(255)"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'KITCHEN'"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
