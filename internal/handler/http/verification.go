package http

import (
	"context"
	"net/http"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) unverifiedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.VerificationService.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// sendVerification mails a fresh code to the account. The code itself is
// never part of the response.
func (h *Handler) sendVerification(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = h.services.VerificationService.IssueChallenge(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", userID).Msg("verification code sent")
	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) redeemVerification(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VerificationService.Redeem(r.Context(), userID, chi.URLParam(r, "otp")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) acceptUser(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.services.VerificationService.AdminAccept)
}

func (h *Handler) rejectUser(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.services.VerificationService.AdminReject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision func(ctx context.Context, userID int64) error) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = decision(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess}, http.StatusOK)
}
