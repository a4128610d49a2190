package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// AuthService implements account registration, login, and access token
// verification. Tokens are stateless HS256 JWTs whose subject is the user id;
// there is no server-side session store.
type AuthService struct {
	users  repo.UserRepo
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs an AuthService signing tokens with secret.
// ttl bounds how long an issued access token stays valid.
func NewAuthService(users repo.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

// Register creates a new account. The password is bcrypt-hashed before it
// reaches the repo; the plaintext is never stored or logged.
func (s *AuthService) Register(ctx context.Context, email, nickname, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(nickname) == "" {
		return domain.User{}, fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		Nickname:     strings.TrimSpace(nickname),
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the user plus a signed access
// token. A wrong email and a wrong password are indistinguishable to the
// caller: both surface domain.ErrNoSession.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("%w: wrong credentials", domain.ErrNoSession)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: wrong credentials", domain.ErrNoSession)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// VerifyToken parses and validates an access token and returns the user id it
// was issued for. Any failure — malformed, expired, wrong signature — maps to
// domain.ErrNoSession.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrNoSession
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, domain.ErrNoSession
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrNoSession
	}
	return userID, nil
}

// issueToken signs a new access token for userID.
func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
