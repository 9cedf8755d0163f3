package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// WriteJSON marshals data and sends it with statusCode. Marshalling happens
// before any header is written, so a failure still produces a clean 500.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "response could not be encoded", http.StatusInternalServerError)
		return 0, fmt.Errorf("encoding response body: %w", err)
	}

	return write(w, contentTypeJSON, body, statusCode)
}

// WriteText sends text as a UTF-8 plain text body.
func WriteText(w http.ResponseWriter, text string, statusCode int) (int, error) {
	return write(w, contentTypeText, []byte(text), statusCode)
}

func write(w http.ResponseWriter, contentType string, body []byte, statusCode int) (int, error) {
	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
