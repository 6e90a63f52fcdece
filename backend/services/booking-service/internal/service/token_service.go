package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTokenTTL is used when no expiry is configured.
	DefaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "evcharge-booking"
)

// ErrInvalidToken wraps every reason a bearer token is refused.
var ErrInvalidToken = errors.New("token: invalid")

// Claims is the JWT payload issued on signup and login.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewTokenService returns a HS256 token service. expiresIn <= 0 selects DefaultTokenTTL.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = DefaultTokenTTL
	}
	t := &TokenService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
	t.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	return t
}

// GenerateToken issues a token for the user.
func (t *TokenService) GenerateToken(userID int64, username string) (string, error) {
	if userID == 0 {
		return "", errors.New("token: user id is required")
	}

	issuedAt := t.now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.expiresIn)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ValidateToken checks signature, issuer and expiry. Errors wrap ErrInvalidToken
// and the underlying jwt error.
func (t *TokenService) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := t.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}
