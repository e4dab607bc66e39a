package handler

// Request/response shapes for the identity RPC surface. Business failures
// travel in the response body (success=false / valid=false plus a message),
// never as bare transport errors, so callers can always tell "denied" apart
// from "the service could not answer".

type authenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authenticateResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

type tokenRequest struct {
	// Token may be omitted when the caller sends an Authorization: Bearer
	// header instead.
	Token string `json:"token,omitempty"`
}

type validationResponse struct {
	Valid   bool   `json:"valid"`
	UserID  int64  `json:"user_id,omitempty"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message"`
}

type invalidationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type createUserResponse struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"user_id,omitempty"`
	Message string `json:"message"`
}
