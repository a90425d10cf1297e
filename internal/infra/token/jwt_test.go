package token

import (
	"testing"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(at time.Time) *Manager {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	m.now = func() time.Time { return at }
	return m
}

func TestAccessRoundTrip(t *testing.T) {
	m := newTestManager(issuedAt.Add(time.Minute))
	user := model.User{ID: 42, IsStaff: true, TokenVersion: 3}

	raw, exp, err := m.IssueAccess(user, issuedAt)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(15*time.Minute), exp)

	claims, err := m.ParseAccess(raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, claims.Staff)
	assert.False(t, claims.Superuser)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestParseAccess_Rejects(t *testing.T) {
	user := model.User{ID: 42}
	raw, _, err := newTestManager(issuedAt).IssueAccess(user, issuedAt)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		_, err := newTestManager(issuedAt.Add(time.Hour)).ParseAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewManager("another-secret", time.Minute, time.Minute)
		other.now = func() time.Time { return issuedAt }
		_, err := other.ParseAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none alg", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = newTestManager(issuedAt).ParseAccess(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

}

func TestActivation_StaleAfterStateChange(t *testing.T) {
	m := newTestManager(issuedAt.Add(time.Minute))
	user := model.User{ID: 7, PasswordHash: "h1"}

	raw, err := m.IssueActivation(user, issuedAt)
	require.NoError(t, err)
	require.NoError(t, m.VerifyActivation(raw, user))

	activated := user
	activated.IsActive = true
	assert.ErrorIs(t, m.VerifyActivation(raw, activated), ErrStaleActivation)

	rehashed := user
	rehashed.PasswordHash = "h2"
	assert.ErrorIs(t, m.VerifyActivation(raw, rehashed), ErrStaleActivation)

	assert.ErrorIs(t, m.VerifyActivation(raw, model.User{ID: 8, PasswordHash: "h1"}), ErrInvalidToken)
}

func TestActivation_Expires(t *testing.T) {
	user := model.User{ID: 7}
	raw, err := newTestManager(issuedAt).IssueActivation(user, issuedAt)
	require.NoError(t, err)

	late := newTestManager(issuedAt.Add(73 * time.Hour))
	assert.ErrorIs(t, late.VerifyActivation(raw, user), ErrInvalidToken)
}
