package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"
)

type MenuUsecase struct {
	tx          repo.TransactionManager
	restaurants repo.RestaurantRepository
	clock       Clock
}

func NewMenuUsecase(tx repo.TransactionManager, restaurants repo.RestaurantRepository, clock Clock) *MenuUsecase {
	return &MenuUsecase{tx: tx, restaurants: restaurants, clock: clock}
}

type MenuItemInput struct {
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	Dietary     []string `json:"dietary"`
	Popular     bool     `json:"popular"`
	SortOrder   int      `json:"sort_order"`
}

type MenuCategoryInput struct {
	Name  string          `json:"name"`
	Items []MenuItemInput `json:"items"`
}

type ReplaceMenuInput struct {
	Name       string              `json:"name"`
	Categories []MenuCategoryInput `json:"categories"`
}

type MenuOutput struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReplaceMenuは既存メニューを非アクティブ化して新メニュー＋明細を作る。
// 全部1トランザクション（途中で失敗したら旧メニューのまま）
func (u *MenuUsecase) ReplaceMenu(ctx context.Context, callerRestaurantID int64, restaurantID int64, in ReplaceMenuInput) (MenuOutput, error) {
	if restaurantID <= 0 {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	//自店舗以外のメニューは触れない
	if restaurantID != callerRestaurantID {
		return MenuOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if _, err := u.restaurants.FindByID(ctx, restaurantID); errors.Is(err, repo.ErrNotFound) {
		return MenuOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	} else if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Main Menu"
	}

	//明細の入力チェック
	for _, cat := range in.Categories {
		for _, it := range cat.Items {
			if strings.TrimSpace(it.Name) == "" {
				return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "item name is required")
			}
			if it.Price < 0 {
				return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "item price must be >= 0")
			}
		}
	}

	now := u.clock.Now()
	var out MenuOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Menus().DeactivateByRestaurant(ctx, restaurantID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		menuID, err := r.Menus().Create(ctx, model.Menu{
			RestaurantID: restaurantID,
			Name:         name,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]model.MenuItem, 0)
		for _, cat := range in.Categories {
			for _, it := range cat.Items {
				category := strings.TrimSpace(it.Category)
				if category == "" {
					category = strings.TrimSpace(cat.Name)
				}
				items = append(items, model.MenuItem{
					MenuID:       menuID,
					RestaurantID: restaurantID,
					Name:         strings.TrimSpace(it.Name),
					Price:        it.Price,
					Description:  it.Description,
					Category:     category,
					ImageURL:     it.ImageURL,
					DietaryTags:  it.Dietary,
					IsPopular:    it.Popular,
					SortOrder:    it.SortOrder,
					IsActive:     true,
					CreatedAt:    now,
					UpdatedAt:    now,
				})
			}
		}
		if err := r.MenuItems().CreateBulk(ctx, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = MenuOutput{
			ID:           menuID,
			RestaurantID: restaurantID,
			Name:         name,
			IsActive:     true,
			ItemCount:    len(items),
			CreatedAt:    now,
		}
		return nil
	})

	if err != nil {
		return MenuOutput{}, err
	}
	return out, nil
}
