package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/api/middleware"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

const msgLoggedOut = "Logout successful"

// SessionHandler serves the routes behind the bearer-token middleware.
type SessionHandler struct {
	revoker ports.TokenRevoker
}

// NewSessionHandler accepts a nil revoker; Logout is then not routed.
func NewSessionHandler(revoker ports.TokenRevoker) *SessionHandler {
	return &SessionHandler{revoker: revoker}
}

// Me returns the identity carried by the presented token.
//
// @Summary      Current user
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrInvalidToken
	}
	return c.JSON(http.StatusOK, meResponse{ID: claims.UserID, Username: claims.Username})
}

// Logout revokes the presented token until its natural expiry.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.TokenID == "" {
		return domain.ErrInvalidToken
	}
	if h.revoker == nil {
		return fmt.Errorf("logout: no revocation store configured")
	}

	if err := h.revoker.Revoke(c.Request().Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msgLoggedOut})
}
