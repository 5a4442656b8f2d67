package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetside/internal/shared/authorization"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token, err := svc.Generate("vnd_abc123", authorization.RoleVendor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "vnd_abc123", claims.ActorSID)
	assert.Equal(t, authorization.RoleVendor, claims.Role)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", 15)
	other := NewJWTService("other-secret", 15)

	token, err := svc.Generate("adm_root", authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	now := time.Now().UTC().Add(-time.Hour)
	claims := &Claims{
		ActorSID: "vnd_abc123",
		Role:     authorization.RoleVendor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.Error(t, err)
}

func TestJWTServiceRejectsWrongAlgorithm(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ActorSID: "vnd_abc123"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.Error(t, err)
}
