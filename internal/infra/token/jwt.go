package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposeActivate = "activate"

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrStaleActivation means the token was issued for a different account state.
	ErrStaleActivation = errors.New("activation token no longer matches the account")
)

// AccessClaims are carried by every access token.
type AccessClaims struct {
	Staff        bool `json:"staff"`
	Superuser    bool `json:"su"`
	TokenVersion int  `json:"tv"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject.
func (c AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type activationClaims struct {
	Purpose string `json:"purpose"`
	State   string `json:"st"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with one shared secret.
type Manager struct {
	secret        []byte
	accessTTL     time.Duration
	activationTTL time.Duration
	now           func() time.Time
}

func NewManager(secret string, accessTTL, activationTTL time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		activationTTL: activationTTL,
		now:           time.Now,
	}
}

// IssueAccess signs an access token for the user.
func (m *Manager) IssueAccess(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.accessTTL)

	claims := AccessClaims{
		Staff:        user.IsStaff,
		Superuser:    user.IsSuperuser,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccess verifies signature, algorithm and expiry.
func (m *Manager) ParseAccess(raw string) (AccessClaims, error) {
	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tok.Valid {
		return AccessClaims{}, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return AccessClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// IssueActivation binds an activation token to the user's current state. Once
// the account is activated or its password changes, the token stops verifying.
func (m *Manager) IssueActivation(user model.User, now time.Time) (string, error) {
	claims := activationClaims{
		Purpose: purposeActivate,
		State:   accountFingerprint(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.activationTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) VerifyActivation(raw string, user model.User) error {
	var claims activationClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(strconv.FormatInt(user.ID, 10)),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tok.Valid || claims.Purpose != purposeActivate {
		return ErrInvalidToken
	}
	if claims.State != accountFingerprint(user) {
		return ErrStaleActivation
	}
	return nil
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return m.secret, nil
}

func accountFingerprint(u model.User) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%t|%s", u.ID, u.IsActive, u.PasswordHash)))
	return hex.EncodeToString(sum[:16])
}
