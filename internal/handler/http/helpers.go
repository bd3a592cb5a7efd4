package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/middleware"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
)

// currentSession returns the session loaded by middleware.SessionRequired.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrSessionNotFound)
	}
	return sess, ok
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

// getOptionalIntQueryParam returns nil when the parameter is absent
func getOptionalIntQueryParam(r *http.Request, key string) (*int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func currentYear() int {
	return time.Now().Year()
}
