package http

import (
	"encoding/json"
	"net/http"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) AuthHandler {
	return &authHandlerImpl{sessions: sessions}
}

type meResponse struct {
	user.User
	Permissions []user.Permission `json:"permissions"`
	ExpiresAt   int64             `json:"expires_at"`
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, _, err := h.sessions.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}

func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Logout(sess.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *authHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	response.Success(w, meResponse{
		User:        sess.User,
		Permissions: user.RolePermissions[sess.User.Role],
		ExpiresAt:   sess.ExpiresAt.Unix(),
	})
}
