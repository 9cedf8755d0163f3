package http

import (
	"net/http"

	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

const updateImageField = "image"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListExamTakers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	identity, _ := utils.GetIdentityFromContext(r.Context())
	user, err := h.services.UserService.GetProfile(r.Context(), identity, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser takes a JSON body or a multipart form with an optional image
// part. Only name, username and image can change.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var (
		update models.UserUpdate
		image  *models.ImageUpload
	)

	if isMultipart(r) {
		upload, file, err := parseMultipart(r, updateImageField)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if file != nil {
			defer file.Close()
		}

		image = upload
		update.Name = optionalFormValue(r, "name")
		update.Username = optionalFormValue(r, "username")
	} else if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	update.UserID = userID

	identity, _ := utils.GetIdentityFromContext(r.Context())
	user, err := h.services.UserService.UpdateProfile(r.Context(), identity, update, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.UserService.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) userActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = authorizeHistory(r, userID); err != nil {
		writeError(w, r, err)
		return
	}

	activities, err := h.services.DashboardService.UserActivities(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ActivitiesResponse{LatestActivities: activities}, http.StatusOK)
}

// authorizeHistory lets admins read any exam history and exam takers only
// their own.
func authorizeHistory(r *http.Request, userID int64) error {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return ErrMissingToken
	}
	if !identity.IsAdmin() && identity.UserID != userID {
		return service.ErrNotOwnAccount
	}
	return nil
}
