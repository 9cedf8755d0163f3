package http

import (
	"net/http"

	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.services.CatalogService.ListRooms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, rooms, http.StatusOK)
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if err := decodeJSON(r, &room); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.CatalogService.CreateRoom(r.Context(), room)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}
