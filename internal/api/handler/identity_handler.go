package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventflow/identity-service/internal/api/metrics"
	"github.com/eventflow/identity-service/internal/core/domain"
	"github.com/eventflow/identity-service/internal/core/ports"
)

// IdentityHandler is the RPC facade over the credential and token services.
// It holds no state of its own beyond references to the two components.
type IdentityHandler struct {
	credentials ports.CredentialService
	tokens      ports.TokenService
}

func NewIdentityHandler(credentials ports.CredentialService, tokens ports.TokenService) *IdentityHandler {
	return &IdentityHandler{credentials: credentials, tokens: tokens}
}

// Authenticate handles POST /v1/auth/authenticate.
//
// @Summary      Authenticate a user and issue a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Login credentials"
// @Success      200   {object}  authenticateResponse
// @Failure      401   {object}  authenticateResponse
// @Failure      503   {object}  map[string]string
// @Router       /v1/auth/authenticate [post]
func (h *IdentityHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.credentials.VerifyCredentials(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return c.JSON(http.StatusUnauthorized, authenticateResponse{
				Success: false,
				Message: "invalid username or password",
			})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, authenticateResponse{
		Success: true,
		Token:   token,
		Message: "authentication successful",
	})
}

// ValidateToken handles POST /v1/auth/validate. A negative verdict is a
// normal answer, not an HTTP error: the response body carries valid=false
// plus the reason.
//
// @Summary      Validate a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token, unless sent as a bearer header"
// @Success      200   {object}  validationResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/auth/validate [post]
func (h *IdentityHandler) ValidateToken(c echo.Context) error {
	raw, err := tokenFromRequest(c)
	if err != nil {
		return err
	}

	claims, err := h.tokens.Validate(c.Request().Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenRevoked):
			metrics.TokenValidationsTotal.WithLabelValues("revoked").Inc()
			return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: "token revoked"})
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
			return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: "token expired"})
		case errors.Is(err, domain.ErrTokenMalformed):
			metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
			return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: "invalid token"})
		}
		metrics.TokenValidationsTotal.WithLabelValues("error").Inc()
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
		return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: "invalid token"})
	}

	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, validationResponse{
		Valid:   true,
		UserID:  userID,
		Role:    string(claims.Role),
		Message: "token is valid",
	})
}

// InvalidateToken handles POST /v1/auth/invalidate. Revocation never fails
// for token-shaped reasons; even a malformed or expired token is recorded.
// The only error surfaced is an unreachable revocation store.
//
// @Summary      Invalidate a token (logout)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token, unless sent as a bearer header"
// @Success      200   {object}  invalidationResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/auth/invalidate [post]
func (h *IdentityHandler) InvalidateToken(c echo.Context) error {
	raw, err := tokenFromRequest(c)
	if err != nil {
		return err
	}

	if err := h.tokens.Revoke(c.Request().Context(), raw); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, invalidationResponse{
		Success: true,
		Message: "token invalidated",
	})
}

// CreateUser handles POST /v1/users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  createUserResponse
// @Failure      409   {object}  createUserResponse
// @Failure      503   {object}  map[string]string
// @Router       /v1/users [post]
func (h *IdentityHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.credentials.CreateUser(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusConflict, createUserResponse{
				Success: false,
				Message: fmt.Sprintf("user with email %s already exists", req.Email),
			})
		case errors.Is(err, domain.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, createUserResponse{
				Success: false,
				Message: fmt.Sprintf("invalid role: %s, must be one of: %s, %s, %s",
					req.Role, domain.RoleAdmin, domain.RoleEventOwner, domain.RoleClient),
			})
		}
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, createUserResponse{
		Success: true,
		UserID:  user.ID,
		Message: fmt.Sprintf("user created with id %d", user.ID),
	})
}
