package http

import (
	"fmt"
	"net/http"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/internal/utils"
)

// auth is the session gate. It reads the credential from the transport
// chosen for this deployment, resolves it to an identity through
// [service.AuthService.Authenticate] and stores the identity in the request
// context. Requests without a valid credential are answered with 401 and
// never reach next.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := h.tokenFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		identity, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// requireAdmin must run behind auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrMissingToken)
			return
		}
		if !identity.IsAdmin() {
			writeError(w, r, service.ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) tokenFromRequest(r *http.Request) (string, error) {
	if h.cfg.TokenTransport == config.TokenTransportHeader {
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", ErrMissingToken
		}

		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMissingToken, err)
		}
		return token, nil
	}

	cookie, err := r.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingToken
	}
	return cookie.Value, nil
}
