package http

import (
	"net/http"
	"strings"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

// register accepts either a JSON body or a multipart form whose optional
// profileImage part becomes the account picture.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		user  models.User
		image *models.ImageUpload
	)

	if isMultipart(r) {
		upload, file, err := parseMultipart(r, profileImageField)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if file != nil {
			defer file.Close()
		}

		image = upload
		user = models.User{
			Name:     strings.TrimSpace(r.FormValue("name")),
			Username: strings.TrimSpace(r.FormValue("username")),
			Password: r.FormValue("password"),
			Gender:   strings.TrimSpace(r.FormValue("gender")),
			Status:   models.Status(strings.TrimSpace(r.FormValue("status"))),
			SchoolID: strings.TrimSpace(r.FormValue("school_id")),
		}
	} else if err := decodeJSON(r, &user); err != nil {
		writeError(w, r, err)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, user, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", registered.UserID).Msg("user registered")
	utils.WriteJSON(w, models.CreatedResponse{Status: models.StatusSuccess, ID: registered.UserID}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	response, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.cfg.TokenTransport == config.TokenTransportHeader {
		w.Header().Set("Authorization", "Bearer "+response.Token)
	} else {
		http.SetCookie(w, h.tokenCookie(response.Token, 0))
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.tokenCookie("", -1))
	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

// tokenCookie builds the credential cookie. A negative maxAge deletes it.
func (h *Handler) tokenCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	// the front end lives on another site, so the cookie only travels
	// cross-site when it is Secure with SameSite=None
	if h.cfg.CookieSecure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	return cookie
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ForgotPasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ResetPasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

// currentUser answers from the credential alone, without a store lookup.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingToken)
		return
	}

	utils.WriteJSON(w, models.UserInfoResponse{
		Status: models.StatusSuccess,
		Name:   identity.Name,
		Image:  identity.Image,
	}, http.StatusOK)
}

func (h *Handler) fetchUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingToken)
		return
	}

	user, err := h.services.UserService.GetProfile(r.Context(), identity, identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
