package repository

import (
	"context"

	"menucraft/internal/domain/model"
)

type MenuRepository interface {
	FindActiveByRestaurant(ctx context.Context, restaurantID int64) (model.Menu, error)
	Create(ctx context.Context, m model.Menu) (int64, error)

	// メニュー差し替え時に既存メニューを全部非アクティブにする
	DeactivateByRestaurant(ctx context.Context, restaurantID int64) error
}

type MenuItemRepository interface {
	ListActiveByMenuID(ctx context.Context, menuID int64) ([]model.MenuItem, error)
	CreateBulk(ctx context.Context, items []model.MenuItem) error
}
