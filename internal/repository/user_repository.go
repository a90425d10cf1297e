package repository

import (
	"context"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type UserRepository interface {
	// Create fails with ErrConflict when the username is taken.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByIDs(ctx context.Context, userIDs []int64) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByEmail returns the oldest account using the address.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string, excludeUserID int64) (bool, error)
	// ListNewestFirst returns every user ordered by id descending.
	ListNewestFirst(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
