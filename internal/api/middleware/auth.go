package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

const claimsKey = "auth.claims"

// Auth validates the bearer token and stores its claims in the context.
// revocations may be nil, in which case logged-out tokens are not tracked.
func Auth(tokens ports.TokenVerifier, revocations ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrInvalidToken
			}

			claims, err := tokens.ParseToken(raw)
			if err != nil {
				return err
			}

			if revocations != nil && claims.TokenID != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					return fmt.Errorf("auth: revocation lookup: %w", err)
				}
				if revoked {
					return domain.ErrInvalidToken
				}
			}

			c.Set(claimsKey, claims)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (*domain.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.TokenClaims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
