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

// キッチン/管理者トークンの発行。実装はcmd/api（JWT）
type TokenIssuer interface {
	Issue(userID int64, restaurantID int64, role model.Role, now time.Time) (string, time.Time, error)
}

type AuthUsecase struct {
	restaurants repo.RestaurantRepository
	users       repo.UserRepository
	verifier    PasswordVerifier
	issuer      TokenIssuer
	clock       Clock
}

func NewAuthUsecase(
	restaurants repo.RestaurantRepository,
	users repo.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		restaurants: restaurants,
		users:       users,
		verifier:    verifier,
		issuer:      issuer,
		clock:       clock,
	}
}

type LoginInput struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RestaurantSlug string `json:"restaurant_slug"`
}

type UserOutput struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	RestaurantID int64  `json:"restaurant_id"`
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      UserOutput `json:"user"`
}

// Loginはusername＋password＋店舗slugで認証してJWTを返す
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	slug := strings.TrimSpace(in.RestaurantSlug)

	if username == "" || in.Password == "" || slug == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "username, password and restaurant_slug are required")
	}

	rest, err := u.restaurants.FindActiveBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return LoginOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.users.FindByUsername(ctx, rest.ID, username)
	if errors.Is(err, repo.ErrNotFound) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := u.verifier.Verify(user.PasswordHash, in.Password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := u.clock.Now()

	//最終ログインの更新失敗でログイン自体は落とさない
	_ = u.users.UpdateLastLogin(ctx, user.ID, now)

	token, expiresAt, err := u.issuer.Issue(user.ID, rest.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserOutput{
			ID:           user.ID,
			Username:     user.Username,
			Role:         string(user.Role),
			RestaurantID: rest.ID,
		},
	}, nil
}
