package auth

import (
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Credentials are what the backend hands out at login.
type Credentials struct {
	AccessToken string
	TokenType   string
	User        user.User
}

// TokenResponse is returned to the presentation layer. The backend token
// never leaves the console; callers hold an opaque session token instead.
type TokenResponse struct {
	SessionToken string    `json:"session_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         user.User `json:"user"`
}
