package repository

import (
	"context"
	"errors"
	"time"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByRestaurant(ctx context.Context, restaurantID int64, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)

	//status絞り込み
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var items []model.Order
	err := q.Order("placed_at desc, id desc").Limit(clampLimit(f.Limit)).Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

// 未指定は50、上限は100で切る
func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, now time.Time) error {
	updates := map[string]interface{}{"status": status}

	//statusに対応するタイムスタンプも同じUPDATEで入れる
	switch status {
	case model.OrderStatusInProgress:
		updates["started_at"] = now
	case model.OrderStatusCompleted:
		updates["completed_at"] = now
	case model.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	//存在しないidでもエラーにしない（冪等）
	return r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&model.Order{}).Error
}

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error
}
