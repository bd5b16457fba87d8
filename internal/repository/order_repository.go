package repository

import (
	"context"
	"time"

	"menucraft/internal/domain/model"
)

type OrderListFilter struct {
	// nilなら全ステータス
	Status *model.OrderStatus
	Limit  int
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// placed_atの新しい順
	ListByRestaurant(ctx context.Context, restaurantID int64, f OrderListFilter) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	// statusと対応するタイムスタンプ列（started_at/completed_at/cancelled_at）を同時に更新する
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, now time.Time) error

	Delete(ctx context.Context, orderID int64) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
