package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/cache"
	"github.com/finintel/finintel/internal/metrics"
	"github.com/finintel/finintel/internal/model"
	"github.com/finintel/finintel/internal/repository"
)

// Account service errors.
var (
	ErrInvalidUsername    = errors.New("username must be 3-80 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailRegistered    = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AccountService handles registration, login, and sessions.
type AccountService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.Repository, cacheClient *cache.Cache, sessionTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:       repo,
		cache:      cacheClient,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if len(username) < 3 || len(username) > 80 {
		return nil, ErrInvalidUsername
	}
	if !strings.Contains(email, "@") || len(email) > 120 {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Watchlist:    "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies credentials and opens a session.
// Returns the session token to set as a cookie.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	authCtx := &model.AuthContext{
		SessionID: token,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
	}

	if err := s.cache.SetSession(ctx, token, authCtx, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.metrics.IncLoginSucceeded()

	return token, user, nil
}

// Logout closes the session identified by token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.cache.DeleteSession(ctx, token)
}

// SessionTTL returns the configured session lifetime.
func (s *AccountService) SessionTTL() time.Duration {
	return s.sessionTTL
}
