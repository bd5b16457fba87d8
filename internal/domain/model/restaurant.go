package model

import "time"

type Restaurant struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`
	Address     string `gorm:"type:text" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	Domain      string `gorm:"type:varchar(255)" json:"domain"`

	// 税率はbasis point（8.5% = 850）で持つ。floatは使わない
	TaxRateBPS int64  `gorm:"column:tax_rate_bps;not null;default:0" json:"tax_rate_bps"`
	Currency   string `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	EstimatedTimePerItem int `gorm:"not null;default:5" json:"estimated_time_per_item"`
	MinimumOrderTime     int `gorm:"not null;default:15" json:"minimum_order_time"`

	// 店舗ごとの注文番号シーケンス
	OrderSeq int64 `gorm:"not null;default:0" json:"-"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
