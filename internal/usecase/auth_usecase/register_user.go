package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/shiyas-dx/Project/internal/domain/model"
	"github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/validator"
)

type RegisterUserInput struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisteredUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// RegisterUserUsecase creates an inactive account and queues its activation mail.
type RegisterUserUsecase struct {
	users       repository.UserRepository
	tx          repository.TransactionManager
	hasher      PasswordHasher
	activation  ActivationTokens
	clock       Clock
	frontendURL string
}

func NewRegisterUserUsecase(
	users repository.UserRepository,
	tx repository.TransactionManager,
	hasher PasswordHasher,
	activation ActivationTokens,
	clock Clock,
	frontendURL string,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		users:       users,
		tx:          tx,
		hasher:      hasher,
		activation:  activation,
		clock:       clock,
		frontendURL: frontendURL,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisteredUser, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validator.ValidateRegister(in.Username, in.Email, in.Password, in.ConfirmPassword); err != nil {
		return RegisteredUser{}, err
	}

	existing, err := u.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		return RegisteredUser{}, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return RegisteredUser{}, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisteredUser{}, err
	}

	now := u.clock.Now()
	user := &model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// the account and its activation mail commit together; delivery happens later
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrUsernameTaken
			}
			return err
		}

		tok, err := u.activation.IssueActivation(*user, now)
		if err != nil {
			return err
		}
		mail := activationMail(*user, activationLink(u.frontendURL, user.ID, tok), now)
		return r.Outbox().Enqueue(ctx, &mail)
	})
	if err != nil {
		return RegisteredUser{}, err
	}

	return RegisteredUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
	}, nil
}
