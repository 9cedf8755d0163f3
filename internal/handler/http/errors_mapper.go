package http

import (
	"errors"
	"net/http"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusTable is matched top to bottom, so the more specific errors
// must come before the taxonomy root they wrap. An unverified account is an
// authentication error in the service layer but is answered with 403.
var errorStatusTable = []errorStatus{
	{service.ErrAccountNotVerified, http.StatusForbidden},

	{ErrMissingToken, http.StatusUnauthorized},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidForm, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{ErrTooManyRequests, http.StatusTooManyRequests},

	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrAuthentication, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrStorage, http.StatusInternalServerError},
	{service.ErrDependency, http.StatusBadGateway},
	{service.ErrVersionIsNotSpecified, http.StatusInternalServerError},
}

// publicDependencyErrors may be shown to the client by their own text. The
// cause they wrap, such as a relay or driver message, never is.
var publicDependencyErrors = []error{
	service.ErrMailDispatch,
	service.ErrImageStorage,
	service.ErrTokenIssue,
	service.ErrSecretGeneration,
	service.ErrPasswordHashing,
}

func statusFromError(err error) int {
	for _, entry := range errorStatusTable {
		if errors.Is(err, entry.target) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// publicMessage is the text sent for err. Client errors carry their full
// message; server-side failures only a fixed one.
func publicMessage(err error, status int) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}

	for _, target := range publicDependencyErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return http.StatusText(status)
}

// writeError logs err through the request logger and answers with its
// mapped status. The full error only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	message := publicMessage(err, status)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
