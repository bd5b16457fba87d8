package repository

import (
	"context"

	"menucraft/internal/domain/model"
)

type RestaurantRepository interface {
	FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error)

	// is_active=trueの店舗だけ返す
	FindActiveBySlug(ctx context.Context, slug string) (model.Restaurant, error)

	Create(ctx context.Context, r model.Restaurant) (int64, error)

	// 店舗ごとの注文番号シーケンスを進めて次の値を返す。
	// 注文作成と同じトランザクションの中で呼ぶこと
	NextOrderNumber(ctx context.Context, restaurantID int64) (int64, error)
}
