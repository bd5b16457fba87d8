package kitchen

import "time"

// バックエンドの注文ステータス
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

type OrderItem struct {
	ID             int64    `json:"id"`
	MenuItemID     int64    `json:"menu_item_id"`
	Name           string   `json:"name"`
	Quantity       int64    `json:"quantity"`
	UnitPrice      int64    `json:"unit_price"`
	Subtotal       int64    `json:"subtotal"`
	Customizations []string `json:"customizations"`
}

// Orderはサーバが返す注文スナップショットのクライアント側の写し
type Order struct {
	ID           int64  `json:"id"`
	OrderNumber  int64  `json:"order_number"`
	RestaurantID int64  `json:"restaurant_id"`
	Status       string `json:"status"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	OrderType     string `json:"order_type"`

	TableNumber  string `json:"table_number,omitempty"`
	CarColor     string `json:"car_color,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	CarModel     string `json:"car_model,omitempty"`

	SpecialNotes string `json:"special_notes,omitempty"`

	Items []OrderItem `json:"items"`

	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`

	PlacedAt    time.Time  `json:"placed_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
