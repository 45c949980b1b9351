package service

import (
	"errors"
	"fmt"
	"time"

	"go-atm/logger"
	"go-atm/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// TokenService signs and parses the bearer tokens that carry a session id
// between HTTP requests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    Clock
}

func NewTokenService(secret string, ttl time.Duration, now Clock) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue returns a signed token for s and its expiry time.
func (ts *TokenService) Issue(s *Session, cardNumber string) (string, time.Time, error) {
	issuedAt := ts.now()
	expiresAt := issuedAt.Add(ts.ttl)

	claims := &model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID().String(),
			Subject:   cardNumber,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ts.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", s.ID().String()).Error("Failed to sign session token")
		return "", time.Time{}, fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Parse validates tokenString and returns its claims.
func (ts *TokenService) Parse(tokenString string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(ts.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
