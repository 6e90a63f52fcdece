package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	token, err := ts.GenerateToken(42, "alice")
	require.NoError(t, err)

	claims, err := ts.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenServiceDefaultExpiry(t *testing.T) {
	ts := NewTokenService("secret", 0)

	token, err := ts.GenerateToken(1, "alice")
	require.NoError(t, err)
	claims, err := ts.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenServiceRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).GenerateToken(1, "alice")
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	ts := NewTokenService("secret", time.Minute)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := ts.GenerateToken(1, "alice")
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenServiceRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).GenerateToken(0, "alice")
	assert.Error(t, err)
}

func TestTokenServiceRejectsOtherIssuer(t *testing.T) {
	claims := Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestTokenCarriesSubject(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	token, err := ts.GenerateToken(42, "alice")
	require.NoError(t, err)

	claims, err := ts.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "evcharge-booking", claims.Issuer)
}
