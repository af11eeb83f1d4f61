package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

const (
	msgRegistered = "User registered successfully"
	msgSignedUp   = "Signup successful"
	msgLoggedIn   = "Login successful"
)

// AuthHandler serves the credential endpoints. Failures are returned to the
// API error handler, which owns the status mapping.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err == nil {
		_, err = h.authService.Register(c.Request().Context(), req.Username, req.Password)
	}
	observe("register", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: msgRegistered})
}

// Signup creates a new user account and returns a bearer token for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var token string
	req, err := bindCredentials(c)
	if err == nil {
		_, token, err = h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	}
	observe("signup", err)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("signup").Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Message: msgSignedUp, Token: token})
}

// Login authenticates a user and returns a bearer token valid for one hour.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var token string
	req, err := bindCredentials(c)
	if err == nil {
		_, token, err = h.authService.Login(c.Request().Context(), req.Username, req.Password)
	}
	observe("login", err)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Message: msgLoggedIn, Token: token})
}

// bindCredentials decodes the body and checks both fields are present before
// any lookup happens.
func bindCredentials(c echo.Context) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func observe(endpoint string, err error) {
	metrics.AuthRequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
}

func outcome(err error) string {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrUserExists):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, domain.ErrInvalidInput), errors.As(err, &he):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
