package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type OrderType string

const (
	OrderTypeDineIn  OrderType = "DINE_IN"
	OrderTypeDriveIn OrderType = "DRIVE_IN"
	OrderTypeTakeout OrderType = "TAKEOUT"
)

// 注文ステータスの遷移表。ここに無い組み合わせは全部不正。
// 巻き戻す遷移は存在しない（単調）ので、同時更新でもロック不要
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusInProgress: true,
		OrderStatusCancelled:  true,
	},
	OrderStatusInProgress: {
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
	},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatusはstatusが既知の値かを返す
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ValidOrderTypeはorder typeが既知の値かを返す
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeDriveIn, OrderTypeTakeout:
		return true
	default:
		return false
	}
}

// CanTransitionはfrom→toが遷移表にあるかを返す。
// from==toはここではfalse（冪等no-opの扱いはusecase側）
func CanTransition(from OrderStatus, to OrderStatus) bool {
	return orderTransitions[from][to]
}

// IsTerminalStatusは以降遷移できないステータスか
func IsTerminalStatus(s OrderStatus) bool {
	return len(orderTransitions[s]) == 0 && ValidOrderStatus(s)
}

type Order struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID int64 `gorm:"not null;index;uniqueIndex:uq_orders_restaurant_number" json:"restaurant_id"`

	// 店舗ごとに連番（表示用）
	OrderNumber int64 `gorm:"not null;uniqueIndex:uq_orders_restaurant_number" json:"order_number"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(50);not null" json:"customer_phone"`
	OrderType     OrderType `gorm:"type:varchar(20);not null" json:"order_type"`

	// order typeで決まる条件付きフィールド（DINE_IN: table / DRIVE_IN: car）
	TableNumber  string `gorm:"type:varchar(20)" json:"table_number,omitempty"`
	CarColor     string `gorm:"type:varchar(50)" json:"car_color,omitempty"`
	LicensePlate string `gorm:"type:varchar(20)" json:"license_plate,omitempty"`
	CarModel     string `gorm:"type:varchar(100)" json:"car_model,omitempty"`

	SpecialNotes string `gorm:"type:text" json:"special_notes,omitempty"`

	// 金額は最小通貨単位。total = subtotal + tax
	Subtotal int64 `gorm:"not null" json:"subtotal"`
	Tax      int64 `gorm:"not null" json:"tax"`
	Total    int64 `gorm:"not null" json:"total"`

	PlacedAt    time.Time  `gorm:"not null;index" json:"placed_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
