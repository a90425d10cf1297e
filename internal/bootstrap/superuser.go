package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"

	"github.com/sirupsen/logrus"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type SuperuserInput struct {
	Username string
	Email    string
	Password string
}

// EnsureSuperuser creates an active superuser when no account holds the username yet.
// An empty username disables it.
func EnsureSuperuser(ctx context.Context, users repo.UserRepository, hasher PasswordHasher, in SuperuserInput, log logrus.FieldLogger) (bool, error) {
	if in.Username == "" {
		return false, nil
	}
	if in.Password == "" {
		return false, errors.New("superuser password is required")
	}

	_, err := users.FindByUsername(ctx, in.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, fmt.Errorf("lookup superuser: %w", err)
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return false, fmt.Errorf("hash superuser password: %w", err)
	}

	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("create superuser: %w", err)
	}

	log.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("superuser created")
	return true, nil
}
