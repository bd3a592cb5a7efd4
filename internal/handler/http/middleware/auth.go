package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/jwt"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Sessions resolves the session an access token names.
type Sessions interface {
	Get(id string) (*session.Session, error)
}

// SessionRequired runs after jwtauth.Verifier. It accepts only access tokens
// and loads the live session they name into the request context.
func SessionRequired(sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, err := jwt.SessionID(token)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			sess, err := sessions.Get(sessionID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}
