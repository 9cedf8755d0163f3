package http

import (
	"net/http"

	"github.com/Z3ron7/server/internal/utils"
)

// fetchLatest reports the newest exams of ?userId=, defaulting to the
// caller, capped by ?limit=.
func (h *Handler) fetchLatest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingToken)
		return
	}

	if raw := r.URL.Query().Get("userId"); raw != "" {
		requested, err := parseID(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		userID = requested
	}

	if err := authorizeHistory(r, userID); err != nil {
		writeError(w, r, err)
		return
	}

	limit, err := queryUint(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	latest, err := h.services.DashboardService.LatestActivity(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, latest, http.StatusOK)
}

func (h *Handler) fetchExamRoom(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.services.DashboardService.RoomSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, sessions, http.StatusOK)
}

// fetchRankings lists room sessions of ?competencyId=; the service picks
// the default competency when it is absent.
func (h *Handler) fetchRankings(w http.ResponseWriter, r *http.Request) {
	competencyID, err := queryUint(r, "competencyId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	sessions, err := h.services.DashboardService.Rankings(r.Context(), int64(competencyID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, sessions, http.StatusOK)
}
