package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/pkg/metrics"
)

// AuthService implements login.
type AuthService struct {
	repo   ports.AuthRepository
	tokens *TokenManager
	log    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, tokens *TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log.With().Str("component", "auth").Logger()}
}

// Login verifies the credentials and returns a signed token with the identity
// it carries. Unknown email and wrong password both yield
// domain.ErrInvalidCredentials so callers cannot tell which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", identity.ID).Str("role", identity.Role).Msg("user logged in")
	return token, &identity, nil
}
