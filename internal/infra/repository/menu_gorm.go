package repository

import (
	"context"
	"errors"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"

	"gorm.io/gorm"
)

type MenuGormRepository struct {
	db *gorm.DB
}

func NewMenuGormRepository(db *gorm.DB) *MenuGormRepository {
	return &MenuGormRepository{db: db}
}

func (r *MenuGormRepository) FindActiveByRestaurant(ctx context.Context, restaurantID int64) (model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("id desc").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Menu{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Menu{}, err
	}
	return m, nil
}

func (r *MenuGormRepository) Create(ctx context.Context, m model.Menu) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *MenuGormRepository) DeactivateByRestaurant(ctx context.Context, restaurantID int64) error {
	//対象0件でもエラーにしない（初回メニュー作成）
	return r.db.WithContext(ctx).Model(&model.Menu{}).
		Where("restaurant_id = ?", restaurantID).
		Update("is_active", false).Error
}

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

func (r *MenuItemGormRepository) ListActiveByMenuID(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("menu_id = ? AND is_active = ?", menuID, true).
		Order("category asc, sort_order asc, id asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) CreateBulk(ctx context.Context, items []model.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
