package http

import (
	"net/http"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var input models.QuestionInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	questionID, err := h.services.QuestionService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CreatedResponse{Status: models.StatusSuccess, ID: questionID}, http.StatusCreated)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "questionId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input models.QuestionInput
	if err = decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.QuestionService.Update(r.Context(), questionID, input); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CreatedResponse{Status: models.StatusSuccess, ID: questionID}, http.StatusOK)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "questionId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.QuestionService.Delete(r.Context(), questionID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("question_id", questionID).Msg("question deleted")
	utils.WriteJSON(w, models.CreatedResponse{Status: models.StatusSuccess, ID: questionID}, http.StatusOK)
}

func (h *Handler) fetchQuestionData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.services.QuestionService.FetchData(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, rows, http.StatusOK)
}

func (h *Handler) fetchQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.services.QuestionService.Find(r.Context(), questionFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, questions, http.StatusOK)
}

func (h *Handler) refreshQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.services.QuestionService.Refresh(r.Context(), questionFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, questions, http.StatusOK)
}

func (h *Handler) searchQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.services.QuestionService.SearchText(r.Context(), chi.URLParam(r, "questionText"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, questions, http.StatusOK)
}

func (h *Handler) listPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.services.CatalogService.ListPrograms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, programs, http.StatusOK)
}

func (h *Handler) listCompetencies(w http.ResponseWriter, r *http.Request) {
	competencies, err := h.services.CatalogService.ListCompetencies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, competencies, http.StatusOK)
}

func questionFilter(r *http.Request) models.QuestionFilter {
	query := r.URL.Query()
	return models.QuestionFilter{
		Program:    query.Get("program"),
		Competency: query.Get("competency"),
		Search:     query.Get("search"),
	}
}
