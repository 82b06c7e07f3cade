package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/thenoobgamer12/margawellness/internal/clinic/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

type TokenGenerator interface {
	Issue(user *domain.User) (string, time.Time, error)
	Verify(tokenString string) (*domain.Claims, error)
	Expiry() time.Duration
}

// TokenService issues and verifies HS256 session tokens. Verification is a
// pure local computation; there is no revocation state.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

// Issue signs a session token for the user and returns it with its expiry.
func (ts *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.expiry)

	claims := jwtClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify parses and validates a token string and returns its claim set.
// Any failure (malformed, bad signature, expired) maps to ErrUnauthenticated.
func (ts *TokenService) Verify(tokenString string) (*domain.Claims, error) {
	parsed := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	role, err := domain.ParseRole(parsed.Role)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims := &domain.Claims{
		UserID:   parsed.UserID,
		Username: parsed.Username,
		Role:     role,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}
