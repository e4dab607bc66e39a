package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// tokenFromRequest extracts the raw token for the validate/invalidate
// operations. The gateway forwards tokens as Authorization: Bearer headers;
// direct RPC callers may put the token in the JSON body instead. The header
// wins when both are present.
func tokenFromRequest(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", echo.NewHTTPError(http.StatusBadRequest, "invalid authorization header")
		}
		return strings.TrimSpace(parts[1]), nil
	}

	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}
	return req.Token, nil
}
