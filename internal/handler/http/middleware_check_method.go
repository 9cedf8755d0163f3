// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package http

import (
	"net/http"

	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

// notFound and methodNotAllowed keep unmatched requests on the JSON error
// contract instead of chi's plain-text defaults.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: "route not found"}, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: "method " + r.Method + " is not allowed"}, http.StatusMethodNotAllowed)
}
