package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"evcharge/backend/services/booking-service/internal/models"
	"evcharge/backend/services/booking-service/internal/password"
	"evcharge/backend/services/booking-service/internal/repository"
)

const maxUsernameLength = 255

// validUsername reports whether a trimmed username can be stored: non-empty,
// at most maxUsernameLength bytes, valid UTF-8 and free of control characters.
func validUsername(username string) bool {
	if username == "" || len(username) > maxUsernameLength {
		return false
	}
	for _, r := range username {
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo      UserRepository
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Signup registers a new user and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, username, pass string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if !validUsername(username) {
		return "", nil, ErrInvalidInput
	}
	if password.Check(pass) != nil {
		return "", nil, ErrInvalidInput
	}

	// Fast path only; the unique constraint decides under concurrency.
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return "", nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return "", nil, ErrDuplicateUsername
		}
		return "", nil, err
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return token, user, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if !validUsername(username) || pass == "" {
		return "", nil, ErrInvalidInput
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("password comparison failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
