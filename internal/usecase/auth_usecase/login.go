package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	"github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/validator"
)

// Identifier is a username, or an e-mail address when it contains "@".
type LoginInput struct {
	Identifier string
	Password   string
	UserAgent  string
}

type LoginUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type LoginOutput struct {
	Refresh string    `json:"refresh"`
	Access  string    `json:"access"`
	User    LoginUser `json:"user"`
}

type LoginUsecase struct {
	users      repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewLoginUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *LoginUsecase {
	return &LoginUsecase{
		users:      users,
		rtRepo:     rtRepo,
		verifier:   verifier,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

// Execute never tells apart an unknown account, a wrong password and an inactive account.
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := validator.ValidateLogin(in.Identifier, in.Password); err != nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	user, err := u.lookup(ctx, strings.TrimSpace(in.Identifier))
	if errors.Is(err, repository.ErrNotFound) {
		return LoginOutput{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginOutput{}, err
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) || !user.IsActive {
		return LoginOutput{}, ErrInvalidCredentials
	}

	now := u.clock.Now()
	access, refresh, err := issuePair(ctx, u.rtRepo, u.issuer, u.idGen, *user, in.UserAgent, now, u.refreshTTL)
	if err != nil {
		return LoginOutput{}, err
	}

	if err := u.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		Refresh: refresh,
		Access:  access,
		User: LoginUser{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsStaff:     user.IsStaff,
			IsSuperuser: user.IsSuperuser,
		},
	}, nil
}

func (u *LoginUsecase) lookup(ctx context.Context, identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		return u.users.FindByEmail(ctx, identifier)
	}
	return u.users.FindByUsername(ctx, identifier)
}

// issuePair signs an access token and stores a new refresh token for the user.
func issuePair(
	ctx context.Context,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	user model.User,
	userAgent string,
	now time.Time,
	refreshTTL time.Duration,
) (string, string, error) {
	access, _, err := issuer.IssueAccess(user, now)
	if err != nil {
		return "", "", err
	}

	plain, err := generateSecureToken(32)
	if err != nil {
		return "", "", err
	}

	rt := &model.RefreshToken{
		ID:        idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashToken(plain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(refreshTTL),
	}
	if err := rtRepo.Create(ctx, rt); err != nil {
		return "", "", err
	}
	return access, plain, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
