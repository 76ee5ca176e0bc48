package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, signin and bearer token verification.
// The signing key is injected at construction and never read from
// process-global state afterwards.
type AuthService struct {
	users    repository.UserStore
	secret   []byte
	tokenTTL time.Duration
	cost     int
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repository.UserStore, secret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		cost:     bcryptCost,
	}
}

// Signup hashes the password and persists a new user. The hash and the
// plaintext are never returned to the caller.
func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("service: %w - missing username or password", auctionerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("service: failed to hash password for %s: %w", username, err)
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("service: failed to create user %s: %w", username, err)
	}
	return nil
}

// Signin verifies the credentials and issues a signed, time-limited
// bearer token embedding the user's identity.
func (s *AuthService) Signin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("service: %w - missing username or password", auctionerrors.ErrInvalidInput)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("service: signin for %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("service: signin for %s: %w", username, auctionerrors.ErrInvalidCredentials)
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("service: failed to sign token for %s: %w", username, err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the username it
// carries. Only HMAC-signed tokens are accepted.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("token is invalid")
		}
		return "", fmt.Errorf("service: verify token: %w: %w", auctionerrors.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("service: verify token: %w - unexpected claims type", auctionerrors.ErrInvalidCredentials)
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("service: verify token: %w - missing username claim", auctionerrors.ErrInvalidCredentials)
	}
	return username, nil
}
