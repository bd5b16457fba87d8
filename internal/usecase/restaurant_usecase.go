package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"
)

// 店舗作成時のデフォルト管理者。初回ログイン後に変える前提
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type RestaurantUsecase struct {
	tx          repo.TransactionManager
	restaurants repo.RestaurantRepository
	menus       repo.MenuRepository
	menuItems   repo.MenuItemRepository
	hasher      PasswordHasher
	clock       Clock

	orderingBaseURL string
	kitchenBaseURL  string
}

func NewRestaurantUsecase(
	tx repo.TransactionManager,
	restaurants repo.RestaurantRepository,
	menus repo.MenuRepository,
	menuItems repo.MenuItemRepository,
	hasher PasswordHasher,
	clock Clock,
	orderingBaseURL string,
	kitchenBaseURL string,
) *RestaurantUsecase {
	return &RestaurantUsecase{
		tx:              tx,
		restaurants:     restaurants,
		menus:           menus,
		menuItems:       menuItems,
		hasher:          hasher,
		clock:           clock,
		orderingBaseURL: strings.TrimRight(orderingBaseURL, "/"),
		kitchenBaseURL:  strings.TrimRight(kitchenBaseURL, "/"),
	}
}

type CreateRestaurantInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	TaxRateBPS  int64  `json:"tax_rate_bps"`
	Currency    string `json:"currency"`
}

type RestaurantOutput struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Domain      string    `json:"domain"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CredentialsOutput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	KitchenURL  string `json:"kitchen_url"`
	OrderingURL string `json:"ordering_url"`
}

type CreateRestaurantOutput struct {
	Restaurant  RestaurantOutput  `json:"restaurant"`
	Credentials CredentialsOutput `json:"credentials"`
}

// CreateRestaurantは店舗＋デフォルト管理者を1トランザクションで作る
func (u *RestaurantUsecase) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (CreateRestaurantOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateRestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.TaxRateBPS < 0 || in.TaxRateBPS > 10000 {
		return CreateRestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tax_rate_bps")
	}

	slug := Slugify(name)
	if slug == "" {
		return CreateRestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "name must contain letters or numbers")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}

	hash, err := u.hasher.Hash(defaultAdminPassword)
	if err != nil {
		return CreateRestaurantOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	now := u.clock.Now()
	var out CreateRestaurantOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		restID, err := r.Restaurants().Create(ctx, model.Restaurant{
			Name:        name,
			Slug:        slug,
			Email:       strings.TrimSpace(in.Email),
			Phone:       strings.TrimSpace(in.Phone),
			Address:     strings.TrimSpace(in.Address),
			Description: strings.TrimSpace(in.Description),
			Domain:      strings.TrimSpace(in.Domain),
			TaxRateBPS:  in.TaxRateBPS,
			Currency:    currency,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			//slug重複は409
			return NewHTTPError(http.StatusConflict, "restaurant already exists")
		}

		_, err = r.Users().Create(ctx, model.User{
			RestaurantID: restID,
			Username:     defaultAdminUsername,
			Email:        strings.TrimSpace(in.Email),
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = CreateRestaurantOutput{
			Restaurant: RestaurantOutput{
				ID:          restID,
				Name:        name,
				Slug:        slug,
				Email:       strings.TrimSpace(in.Email),
				Phone:       strings.TrimSpace(in.Phone),
				Address:     strings.TrimSpace(in.Address),
				Description: strings.TrimSpace(in.Description),
				Domain:      strings.TrimSpace(in.Domain),
				IsActive:    true,
				CreatedAt:   now,
			},
			Credentials: CredentialsOutput{
				Username:    defaultAdminUsername,
				Password:    defaultAdminPassword,
				KitchenURL:  fmt.Sprintf("%s/%s", u.kitchenBaseURL, slug),
				OrderingURL: fmt.Sprintf("%s/%s", u.orderingBaseURL, slug),
			},
		}
		return nil
	})

	if err != nil {
		return CreateRestaurantOutput{}, err
	}
	return out, nil
}

type MenuCategoryOutput struct {
	Name  string           `json:"name"`
	Items []MenuItemOutput `json:"items"`
}

type MenuItemOutput struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url,omitempty"`
	Dietary     []string `json:"dietary"`
	Popular     bool     `json:"popular"`
}

type RestaurantConfigOutput struct {
	Restaurant struct {
		Name        string `json:"name"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Description string `json:"description"`
		Email       string `json:"email"`
	} `json:"restaurant"`
	MenuCategories       []MenuCategoryOutput `json:"menu_categories"`
	TaxRateBPS           int64                `json:"tax_rate_bps"`
	Currency             string               `json:"currency"`
	EstimatedTimePerItem int                  `json:"estimated_time_per_item"`
	MinimumOrderTime     int                  `json:"minimum_order_time"`
}

// GetConfigは注文サイト向けの店舗設定＋アクティブメニューを返す
func (u *RestaurantUsecase) GetConfig(ctx context.Context, slug string) (RestaurantConfigOutput, error) {
	rest, err := u.restaurants.FindActiveBySlug(ctx, strings.TrimSpace(slug))
	if errors.Is(err, repo.ErrNotFound) {
		return RestaurantConfigOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return RestaurantConfigOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out RestaurantConfigOutput
	out.Restaurant.Name = rest.Name
	out.Restaurant.Phone = rest.Phone
	out.Restaurant.Address = rest.Address
	out.Restaurant.Description = rest.Description
	out.Restaurant.Email = rest.Email
	out.TaxRateBPS = rest.TaxRateBPS
	out.Currency = rest.Currency
	out.EstimatedTimePerItem = rest.EstimatedTimePerItem
	out.MinimumOrderTime = rest.MinimumOrderTime
	out.MenuCategories = []MenuCategoryOutput{}

	menu, err := u.menus.FindActiveByRestaurant(ctx, rest.ID)
	if errors.Is(err, repo.ErrNotFound) {
		//メニュー未登録の店舗はカテゴリ空で返す
		return out, nil
	}
	if err != nil {
		return RestaurantConfigOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.menuItems.ListActiveByMenuID(ctx, menu.ID)
	if err != nil {
		return RestaurantConfigOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//category→itemsにまとめる。repoがcategory/sort_order順で返すので出現順を保てばいい
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			out.MenuCategories = append(out.MenuCategories, MenuCategoryOutput{Name: it.Category})
			i = len(out.MenuCategories) - 1
			index[it.Category] = i
		}
		out.MenuCategories[i].Items = append(out.MenuCategories[i].Items, MenuItemOutput{
			ID:          it.ID,
			Name:        it.Name,
			Price:       it.Price,
			Description: it.Description,
			Category:    it.Category,
			ImageURL:    it.ImageURL,
			Dietary:     it.DietaryTags,
			Popular:     it.IsPopular,
		})
	}

	return out, nil
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaceRe = regexp.MustCompile(`\s+`)
var slugDashRe = regexp.MustCompile(`-+`)

// Slugifyは店舗名からURL用slugを作る（pizza Palace! → pizza-palace）
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
