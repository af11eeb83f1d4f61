package ports

import (
	"context"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// CredentialService hashes and verifies passwords and issues bearer tokens.
type CredentialService interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// an error means the stored hash itself is unusable.
	Verify(password, hash string) (bool, error)
	IssueToken(userID, username string) (string, error)
}

// TokenVerifier decodes and validates a bearer token.
type TokenVerifier interface {
	ParseToken(token string) (*domain.TokenClaims, error)
}

// TokenRevoker keeps the list of tokens invalidated before their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
