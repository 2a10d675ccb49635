package utils

import (
	"testing"
	"time"

	"nexus-market/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT(42, models.RoleBuyer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, models.RoleBuyer, claims.Role)
	require.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestParseJWTWrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT(1, models.RoleSeller)
	require.NoError(t, err)

	JwtKey = []byte("another-secret")
	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	JwtKey = []byte("test-secret")

	claims := &Claims{
		UserID: 7,
		Role:   models.RoleBuyer,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JwtKey)
	require.NoError(t, err)

	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseJWT("not-a-token")
	require.Error(t, err)
}
