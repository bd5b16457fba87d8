package repository

import (
	"context"
	"time"

	"menucraft/internal/domain/model"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, restaurantID int64, username string) (model.User, error)
	Create(ctx context.Context, u model.User) (int64, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
