package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it to the response with
// the given status code and a "Content-Type: application/json" header.
//
// Handlers use it for every structured body they return, from token
// envelopes to document listings. If marshaling fails the client gets
// a plain 500 and the wrapped error is returned to the caller.
//
// Example:
//
//	WriteJSON(w, models.DocumentsResponse{Documents: docs}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
