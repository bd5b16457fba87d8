package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByUsername(ctx context.Context, restaurantID int64, username string) (model.User, error) {
	args := m.Called(ctx, restaurantID, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// 固定パスワードだけ通すverifier（bcryptは使わない）
type stubVerifier struct{ ok string }

func (v stubVerifier) Verify(hash string, password string) error {
	if password == v.ok {
		return nil
	}
	return errors.New("mismatch")
}

type stubIssuer struct {
	token string
	err   error
}

func (i stubIssuer) Issue(userID int64, restaurantID int64, role model.Role, now time.Time) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return i.token, now.Add(24 * time.Hour), nil
}

func kitchenUser() model.User {
	return model.User{
		ID:           3,
		RestaurantID: 5,
		Username:     "kitchen1",
		PasswordHash: "$2a$12$stub",
		Role:         model.RoleKitchen,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	users := &UserRepoMock{}
	uc := NewAuthUsecase(restaurants, users, stubVerifier{ok: "secret"}, stubIssuer{token: "jwt-token"}, fixedClock{t: testNow})

	restaurants.On("FindActiveBySlug", mock.Anything, "pizza-palace").
		Return(model.Restaurant{ID: 5, Slug: "pizza-palace", IsActive: true}, nil)
	users.On("FindByUsername", mock.Anything, int64(5), "kitchen1").Return(kitchenUser(), nil)
	users.On("UpdateLastLogin", mock.Anything, int64(3), testNow).Return(nil)

	out, err := uc.Login(context.Background(), LoginInput{
		Username:       "kitchen1",
		Password:       "secret",
		RestaurantSlug: "pizza-palace",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", out.Token)
	assert.Equal(t, testNow.Add(24*time.Hour), out.ExpiresAt)
	assert.Equal(t, int64(3), out.User.ID)
	assert.Equal(t, "KITCHEN", out.User.Role)
	assert.Equal(t, int64(5), out.User.RestaurantID)
	users.AssertExpectations(t)
}

func TestLogin_MissingFields(t *testing.T) {
	uc := NewAuthUsecase(&RestaurantRepoMock{}, &UserRepoMock{}, stubVerifier{}, stubIssuer{}, fixedClock{t: testNow})

	_, err := uc.Login(context.Background(), LoginInput{Username: "kitchen1"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestLogin_UnknownRestaurant(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	uc := NewAuthUsecase(restaurants, &UserRepoMock{}, stubVerifier{}, stubIssuer{}, fixedClock{t: testNow})

	restaurants.On("FindActiveBySlug", mock.Anything, "nope").
		Return(model.Restaurant{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), LoginInput{
		Username:       "kitchen1",
		Password:       "secret",
		RestaurantSlug: "nope",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestLogin_BadCredentials(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	users := &UserRepoMock{}
	uc := NewAuthUsecase(restaurants, users, stubVerifier{ok: "secret"}, stubIssuer{token: "jwt-token"}, fixedClock{t: testNow})

	restaurants.On("FindActiveBySlug", mock.Anything, "pizza-palace").
		Return(model.Restaurant{ID: 5, IsActive: true}, nil)

	t.Run("unknown user", func(t *testing.T) {
		users.On("FindByUsername", mock.Anything, int64(5), "ghost").
			Return(model.User{}, repo.ErrNotFound).Once()

		_, err := uc.Login(context.Background(), LoginInput{Username: "ghost", Password: "secret", RestaurantSlug: "pizza-palace"})
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})

	t.Run("wrong password", func(t *testing.T) {
		users.On("FindByUsername", mock.Anything, int64(5), "kitchen1").
			Return(kitchenUser(), nil).Once()

		_, err := uc.Login(context.Background(), LoginInput{Username: "kitchen1", Password: "wrong", RestaurantSlug: "pizza-palace"})
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})

	t.Run("inactive user", func(t *testing.T) {
		u := kitchenUser()
		u.IsActive = false
		users.On("FindByUsername", mock.Anything, int64(5), "kitchen1").
			Return(u, nil).Once()

		_, err := uc.Login(context.Background(), LoginInput{Username: "kitchen1", Password: "secret", RestaurantSlug: "pizza-palace"})
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})
}

func TestLogin_LastLoginFailureDoesNotBlock(t *testing.T) {
	restaurants := &RestaurantRepoMock{}
	users := &UserRepoMock{}
	uc := NewAuthUsecase(restaurants, users, stubVerifier{ok: "secret"}, stubIssuer{token: "jwt-token"}, fixedClock{t: testNow})

	restaurants.On("FindActiveBySlug", mock.Anything, "pizza-palace").
		Return(model.Restaurant{ID: 5, IsActive: true}, nil)
	users.On("FindByUsername", mock.Anything, int64(5), "kitchen1").Return(kitchenUser(), nil)
	users.On("UpdateLastLogin", mock.Anything, int64(3), testNow).Return(errors.New("db down"))

	out, err := uc.Login(context.Background(), LoginInput{
		Username:       "kitchen1",
		Password:       "secret",
		RestaurantSlug: "pizza-palace",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", out.Token)
}
