package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

// Service issues the tokens console callers present. A token only names a
// session; the backend bearer token stays inside the session.
type Service interface {
	GenerateSessionToken(sessionID string, u user.User) (token string, expiresAt int64, err error)
	ParseSessionToken(tokenString string) (sessionID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	TTL() time.Duration
}

type JWTService struct {
	ttl       time.Duration
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func NewJWTService(secretKey string, ttl time.Duration) Service {
	return &JWTService{
		ttl:       ttl,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) TTL() time.Duration {
	return j.ttl
}

func (j *JWTService) GenerateSessionToken(sessionID string, u user.User) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.ttl).Unix()

	claims := map[string]interface{}{
		"session_id": sessionID,
		"user_id":    u.ID,
		"role":       string(u.Role),
		"type":       tokenTypeAccess,
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseSessionToken verifies the signature, expiry and token type and
// returns the session the token names.
func (j *JWTService) ParseSessionToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	if exp := token.Expiration(); !exp.IsZero() && j.now().After(exp) {
		return "", auth.ErrInvalidToken
	}
	return SessionID(token)
}

// SessionID reads the session claim of an already verified access token.
func SessionID(token jwt.Token) (string, error) {
	if token == nil {
		return "", auth.ErrInvalidToken
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeAccess {
		return "", auth.ErrInvalidToken
	}
	sessionIDVal, ok := token.Get("session_id")
	if !ok {
		return "", auth.ErrInvalidToken
	}
	sessionID, ok := sessionIDVal.(string)
	if !ok || sessionID == "" {
		return "", auth.ErrInvalidToken
	}
	return sessionID, nil
}
