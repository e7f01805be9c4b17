package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"keycontrol-backend/internal/model"
	"keycontrol-backend/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrUnknownUser        = errors.New("token user no longer exists")
	ErrForbidden          = errors.New("insufficient access level")
)

// dummyHash keeps Authenticate constant-time when the username does not
// exist: the bcrypt comparison runs either way.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Claims is the JWT payload. Only the user id travels in the token;
// role and username are re-resolved from the database on every request
// so revocation takes effect immediately.
type Claims struct {
	jwt.RegisteredClaims
}

// Service verifies credentials and issues/validates bearer tokens. It
// holds no session state.
type Service struct {
	store  store.Store
	secret []byte
	expiry time.Duration
}

// NewService creates an authentication service.
func NewService(s store.Store, secret string, expiry time.Duration) *Service {
	return &Service{store: s, secret: []byte(secret), expiry: expiry}
}

// Authenticate checks username/password and returns the user plus a
// signed token. Absent user and wrong password are indistinguishable to
// the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and verifies a bearer token, then resolves the
// embedded user id against the users table.
func (s *Service) VerifyToken(ctx context.Context, raw string) (*model.User, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	user, err := s.store.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, nil
}

// RequireRole fails unless the user holds the given access level.
func RequireRole(user *model.User, role model.AccessLevel) error {
	if user == nil || user.NivelAcesso != role {
		return ErrForbidden
	}
	return nil
}

// HashPassword wraps bcrypt for account creation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
