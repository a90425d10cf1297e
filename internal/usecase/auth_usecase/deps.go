package auth

import (
	"errors"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken         = errors.New("Username already exists")
	ErrUserNotFound          = errors.New("User not found")
	ErrInvalidActivationLink = errors.New("Invalid or expired activation link")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	// ErrRefreshTokenReuse is returned when an already rotated refresh token comes back.
	ErrRefreshTokenReuse = errors.New("refresh token reuse detected")
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// PasswordVerifier compares a plain password with a stored hash.
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type AccessTokenIssuer interface {
	IssueAccess(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

type ActivationTokens interface {
	IssueActivation(user model.User, now time.Time) (string, error)
	VerifyActivation(raw string, user model.User) error
}

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
