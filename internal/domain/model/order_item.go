package model

import (
	"time"

	"gorm.io/datatypes"
)

// OrderItemは注文時点のスナップショット。作成後は不変。
// メニューが後で変わっても名前・価格は変わらない
type OrderItem struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64 `gorm:"not null;index" json:"order_id"`
	MenuItemID int64 `gorm:"not null;index" json:"menu_item_id"`

	NameSnapshot      string `gorm:"column:name_snapshot;type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot int64  `gorm:"column:unit_price_snapshot;not null" json:"unit_price"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	// quantity × unit price（最小通貨単位）
	Subtotal int64 `gorm:"not null" json:"subtotal"`

	Customizations datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"customizations"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
