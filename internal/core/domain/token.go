package domain

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the fixed iss claim stamped into every token. Resource
// services check it to reject tokens minted by other services sharing the
// same secret management.
const TokenIssuer = "eventflow-idm-service"

// TokenClaims is the claim set carried by every issued token: the registered
// claims (iss, sub, iat, exp, jti) plus the role snapshot taken at issuance.
// Later role changes do not retroactively affect already-issued tokens.
type TokenClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID decodes the subject claim back into the numeric user id.
func (c *TokenClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return id, nil
}
