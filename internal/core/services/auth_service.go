package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/auth"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// AuthService validates the admin credentials configured at startup and
// issues session tokens. There is a single admin account; no user table.
type AuthService struct {
	username     string
	passwordHash []byte
	tokens       *auth.TokenManager
	logger       *slog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service. passwordHash is a bcrypt hash.
func NewAuthService(username, passwordHash string, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger.With("component", "auth_service"),
	}
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !usernameMatch || passwordErr != nil {
		s.logger.Warn("admin login rejected", "username", username)
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(s.username)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.logger.Info("admin logged in", "username", s.username)
	return token, nil
}
