package auth

import "context"

// AuthRepository authenticates against the HRIS backend.
type AuthRepository interface {
	Login(ctx context.Context, req LoginRequest) (Credentials, error)
}
