package usecase

import (
	"context"
	"net/http"
	"testing"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMenuUsecase(
	restaurants *RestaurantRepoMock,
	menus *MenuRepoMock,
	menuItems *MenuItemRepoMock,
) *MenuUsecase {
	tx := &TxManagerMock{Repos: &TxReposMock{
		restaurants: restaurants,
		menus:       menus,
		menuItems:   menuItems,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil).Maybe()

	return NewMenuUsecase(tx, restaurants, fixedClock{t: testNow})
}

func replaceInput() ReplaceMenuInput {
	return ReplaceMenuInput{
		Name: "Summer Menu",
		Categories: []MenuCategoryInput{
			{Name: "Pizza", Items: []MenuItemInput{
				{Name: "Margherita", Price: 1000},
				{Name: "Diavola", Price: 1200, Category: "Specials"},
			}},
			{Name: "Drinks", Items: []MenuItemInput{
				{Name: "Cola", Price: 300},
			}},
		},
	}
}

func TestReplaceMenu_Success(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	menus := &MenuRepoMock{}
	menuItems := &MenuItemRepoMock{}
	uc := newMenuUsecase(restaurants, menus, menuItems)

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{ID: 5}, nil)
	menus.On("DeactivateByRestaurant", mock.Anything, int64(5)).Return(nil)
	menus.On("Create", mock.Anything, mock.MatchedBy(func(m model.Menu) bool {
		return m.RestaurantID == 5 && m.Name == "Summer Menu" && m.IsActive
	})).Return(int64(7), nil)
	menuItems.On("CreateBulk", mock.Anything, mock.MatchedBy(func(items []model.MenuItem) bool {
		if len(items) != 3 {
			return false
		}
		// categoryは未指定ならカテゴリ名にフォールバック
		return items[0].Category == "Pizza" &&
			items[1].Category == "Specials" &&
			items[2].Category == "Drinks" &&
			items[0].MenuID == 7
	})).Return(nil)

	out, err := uc.ReplaceMenu(context.Background(), 5, 5, replaceInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, 3, out.ItemCount)
	menus.AssertExpectations(t)
	menuItems.AssertExpectations(t)
}

func TestReplaceMenu_DefaultName(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	menus := &MenuRepoMock{}
	menuItems := &MenuItemRepoMock{}
	uc := newMenuUsecase(restaurants, menus, menuItems)

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{ID: 5}, nil)
	menus.On("DeactivateByRestaurant", mock.Anything, int64(5)).Return(nil)
	menus.On("Create", mock.Anything, mock.MatchedBy(func(m model.Menu) bool {
		return m.Name == "Main Menu"
	})).Return(int64(7), nil)
	menuItems.On("CreateBulk", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.ReplaceMenu(context.Background(), 5, 5, ReplaceMenuInput{})

	assert.NoError(t, err)
	assert.Equal(t, "Main Menu", out.Name)
}

func TestReplaceMenu_Forbidden(t *testing.T) {
	menus := &MenuRepoMock{}
	uc := newMenuUsecase(&RestaurantRepoMock{}, menus, &MenuItemRepoMock{})

	// 店舗6のトークンで店舗5のメニューは差し替えられない
	_, err := uc.ReplaceMenu(context.Background(), 6, 5, replaceInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	menus.AssertNotCalled(t, "DeactivateByRestaurant", mock.Anything, mock.Anything)
}

func TestReplaceMenu_UnknownRestaurant(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	uc := newMenuUsecase(restaurants, &MenuRepoMock{}, &MenuItemRepoMock{})

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{}, repo.ErrNotFound)

	_, err := uc.ReplaceMenu(context.Background(), 5, 5, replaceInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestReplaceMenu_InvalidItems(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	menus := &MenuRepoMock{}
	uc := newMenuUsecase(restaurants, menus, &MenuItemRepoMock{})

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{ID: 5}, nil)

	in := replaceInput()
	in.Categories[0].Items[0].Name = " "
	_, err := uc.ReplaceMenu(context.Background(), 5, 5, in)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	in = replaceInput()
	in.Categories[0].Items[0].Price = -1
	_, err = uc.ReplaceMenu(context.Background(), 5, 5, in)
	he, ok = AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	// 入力が不正なら旧メニューに触らない
	menus.AssertNotCalled(t, "DeactivateByRestaurant", mock.Anything, mock.Anything)
}
