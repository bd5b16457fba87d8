package repository

import (
	"context"
	"errors"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", restaurantID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) FindActiveBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest model.Restaurant) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rest).Error; err != nil {
		return 0, err
	}
	return rest.ID, nil
}

func (r *RestaurantGormRepository) NextOrderNumber(ctx context.Context, restaurantID int64) (int64, error) {
	//UPDATE ... RETURNINGで単一文のままインクリメント（プロセス内カウンタは持たない）
	var seq int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE restaurants SET order_seq = order_seq + 1 WHERE id = ? RETURNING order_seq", restaurantID).
		Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	if seq == 0 {
		return 0, repo.ErrNotFound
	}
	return seq, nil
}
