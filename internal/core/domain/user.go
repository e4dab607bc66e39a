package domain

// Role is the closed set of roles a user can hold. Raw strings are validated
// once at the boundary so downstream code never sees a free-form role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEventOwner Role = "event-owner"
	RoleClient     Role = "client"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleEventOwner, RoleClient:
		return Role(raw), nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an identity record. The password is only ever stored as a
// bcrypt hash; the plaintext never leaves the credential service.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
