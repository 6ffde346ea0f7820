//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"castmind/backend/pkg/logger"
)

const (
	tokenTTL     = 7 * 24 * time.Hour
	tokenSubject = "operator"
	tokenIssuer  = "castmind"
)

var (
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService guards the operator API with a single bcrypt password and HS256 tokens.
// With no secret configured the API is open and Enabled reports false.
type AuthService interface {
	Enabled() bool
	Login(ctx context.Context, password string) (LoginResult, error)
	IssueToken() (LoginResult, error)
	ValidateToken(token string) error
}

type authService struct {
	secret       []byte
	passwordHash []byte
	now          func() time.Time
}

func NewAuthService(secret, passwordHash string) AuthService {
	return &authService{
		secret:       []byte(secret),
		passwordHash: []byte(passwordHash),
		now:          time.Now,
	}
}

func (s *authService) Enabled() bool {
	return len(s.secret) > 0
}

func (s *authService) Login(ctx context.Context, password string) (LoginResult, error) {
	if !s.Enabled() || len(s.passwordHash) == 0 {
		return LoginResult{}, ErrAuthDisabled
	}
	if password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.Warn("operator login rejected", "module", "service", "action", "login", "resource", "auth", "result", "failed")
		return LoginResult{}, ErrInvalidCredentials
	}
	logger.Info("operator login", "module", "service", "action", "login", "resource", "auth", "result", "ok")
	return s.IssueToken()
}

func (s *authService) IssueToken() (LoginResult, error) {
	if !s.Enabled() {
		return LoginResult{}, ErrAuthDisabled
	}
	now := s.now()
	expiresAt := now.Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenSubject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(token string) error {
	if !s.Enabled() {
		return ErrAuthDisabled
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
