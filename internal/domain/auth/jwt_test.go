package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcontext "stockmark/internal/core/context"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("u-42", "alice", appcontext.RoleOperator)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "u-42", user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, appcontext.RoleOperator, user.Role)
	assert.True(t, user.CanWrite())
}

func TestGenerate_UnknownRole(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, _, err := svc.GenerateAccessToken("u-42", "alice", appcontext.Role("superuser"))
	assert.Error(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("u-42", "alice", appcontext.RoleViewer)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Hour
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("u-42", "alice", appcontext.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_UnknownRoleInToken(t *testing.T) {
	// A token signed with the right secret but carrying a role the
	// service does not know must be rejected.
	cfg := DefaultJWTConfig("test-secret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "u-42",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   "u-42",
		Username: "alice",
		Role:     "superuser",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = NewJWTService(cfg).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, appcontext.RoleAdmin.CanWrite())
	assert.True(t, appcontext.RoleOperator.CanWrite())
	assert.False(t, appcontext.RoleViewer.CanWrite())
	assert.False(t, appcontext.Role("superuser").Valid())
}
