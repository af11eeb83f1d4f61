package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// AuthService implements registration, signup and login on top of a user
// store and a credential service.
type AuthService struct {
	repo  ports.UserRepository
	creds ports.CredentialService
	log   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, creds ports.CredentialService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, creds: creds, log: log}
}

// Register creates a user without issuing a token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.createUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Signup creates a user and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.createUser(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.creds.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	return user, token, nil
}

// Login verifies the password and returns a token. Unknown usernames and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.creds.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Msg("login succeeded")
	return user, token, nil
}

// createUser runs the shared check, hash and insert sequence. The lookup only
// short-circuits the common case; the store's unique index decides races.
func (s *AuthService) createUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
