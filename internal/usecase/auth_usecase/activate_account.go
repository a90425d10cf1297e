package auth

import (
	"context"
	"errors"

	"github.com/shiyas-dx/Project/internal/repository"
)

const (
	MsgAccountActivated        = "Account activated successfully"
	MsgAccountAlreadyActivated = "Account already activated"
)

type ActivateAccountOutput struct {
	Message string `json:"message"`
}

type ActivateAccountUsecase struct {
	users      repository.UserRepository
	tx         repository.TransactionManager
	activation ActivationTokens
	clock      Clock
}

func NewActivateAccountUsecase(
	users repository.UserRepository,
	tx repository.TransactionManager,
	activation ActivationTokens,
	clock Clock,
) *ActivateAccountUsecase {
	return &ActivateAccountUsecase{users: users, tx: tx, activation: activation, clock: clock}
}

// Execute is idempotent: an already active account reports success without checking the token.
func (u *ActivateAccountUsecase) Execute(ctx context.Context, uidb64 string, token string) (ActivateAccountOutput, error) {
	id, err := DecodeUID(uidb64)
	if err != nil {
		return ActivateAccountOutput{}, ErrUserNotFound
	}

	user, err := u.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ActivateAccountOutput{}, ErrUserNotFound
	}
	if err != nil {
		return ActivateAccountOutput{}, err
	}

	if user.IsActive {
		return ActivateAccountOutput{Message: MsgAccountAlreadyActivated}, nil
	}

	if err := u.activation.VerifyActivation(token, *user); err != nil {
		return ActivateAccountOutput{}, ErrInvalidActivationLink
	}

	now := u.clock.Now()
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().SetActive(ctx, user.ID, true); err != nil {
			return err
		}
		if user.Email == "" {
			return nil
		}
		mail := welcomeMail(*user, now)
		return r.Outbox().Enqueue(ctx, &mail)
	})
	if err != nil {
		return ActivateAccountOutput{}, err
	}

	return ActivateAccountOutput{Message: MsgAccountActivated}, nil
}
