package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
)

// NotificationHandler serves the session's notification feed
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Dismiss(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct{}

func NewNotificationHandler() NotificationHandler {
	return &notificationHandlerImpl{}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	active := sess.Notifications.Active()
	response.SuccessWithMeta(w, active, &response.Meta{TotalItems: len(active)})
}

func (h *notificationHandlerImpl) Dismiss(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := sess.Notifications.Dismiss(chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
