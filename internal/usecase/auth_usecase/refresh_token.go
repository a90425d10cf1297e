package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiyas-dx/Project/internal/repository"
)

type RefreshOutput struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshTokenUsecase rotates refresh tokens. Each token is accepted once;
// presenting a used one revokes every session of its owner.
type RefreshTokenUsecase struct {
	users      repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewRefreshTokenUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshTokenUsecase {
	return &RefreshTokenUsecase{
		users:      users,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *RefreshTokenUsecase) Execute(ctx context.Context, refreshPlain string, userAgent string) (RefreshOutput, error) {
	if strings.TrimSpace(refreshPlain) == "" {
		return RefreshOutput{}, ErrInvalidRefreshToken
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshPlain))
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return RefreshOutput{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return RefreshOutput{}, err
	}

	now := u.clock.Now()
	if !rt.ExpiresAt.After(now) {
		_ = u.rtRepo.DeleteByID(ctx, rt.ID)
		return RefreshOutput{}, ErrInvalidRefreshToken
	}
	if rt.RevokedAt != nil {
		return RefreshOutput{}, ErrInvalidRefreshToken
	}
	if rt.UsedAt != nil {
		return RefreshOutput{}, u.revokeAll(ctx, rt.UserID, ErrRefreshTokenReuse)
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return RefreshOutput{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return RefreshOutput{}, err
	}
	if !user.IsActive {
		return RefreshOutput{}, u.revokeAll(ctx, user.ID, ErrInvalidRefreshToken)
	}

	// losing this race means another request already rotated the token
	if err := u.rtRepo.MarkUsed(ctx, rt.ID); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return RefreshOutput{}, u.revokeAll(ctx, rt.UserID, ErrRefreshTokenReuse)
		}
		return RefreshOutput{}, err
	}

	access, refresh, err := issuePair(ctx, u.rtRepo, u.issuer, u.idGen, *user, userAgent, now, u.refreshTTL)
	if err != nil {
		return RefreshOutput{}, err
	}
	return RefreshOutput{Access: access, Refresh: refresh}, nil
}

// revokeAll drops every refresh token of the user and returns reason,
// or the storage error when the tokens could not be dropped.
func (u *RefreshTokenUsecase) revokeAll(ctx context.Context, userID int64, reason error) error {
	if err := u.rtRepo.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions of user %d: %w", userID, err)
	}
	return reason
}

type LogoutUsecase struct {
	rtRepo repository.RefreshTokenRepository
}

func NewLogoutUsecase(rtRepo repository.RefreshTokenRepository) *LogoutUsecase {
	return &LogoutUsecase{rtRepo: rtRepo}
}

// Execute drops the given refresh token when it belongs to userID. Unknown tokens are ignored.
func (u *LogoutUsecase) Execute(ctx context.Context, userID int64, refreshPlain string) error {
	if strings.TrimSpace(refreshPlain) == "" {
		return ErrInvalidRefreshToken
	}
	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshPlain))
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rt.UserID != userID {
		return nil
	}
	if err := u.rtRepo.DeleteByID(ctx, rt.ID); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return err
	}
	return nil
}
