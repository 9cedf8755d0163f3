package http

import (
	"context"
	"net/http"

	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

// saveExamResult records a practice exam for the caller. The user id in the
// body is ignored.
func (h *Handler) saveExamResult(w http.ResponseWriter, r *http.Request) {
	h.saveResult(w, r, h.services.ExamService.SaveResult)
}

func (h *Handler) saveRoomResult(w http.ResponseWriter, r *http.Request) {
	h.saveResult(w, r, h.services.ExamService.SaveRoomResult)
}

func (h *Handler) saveResult(
	w http.ResponseWriter,
	r *http.Request,
	save func(ctx context.Context, userID int64, result models.ExamResult) (models.ExamResult, error),
) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingToken)
		return
	}

	var result models.ExamResult
	if err := decodeJSON(r, &result); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := save(r.Context(), userID, result)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}
