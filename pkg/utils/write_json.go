package utils

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteJSON writes data with a 200 status.
func WriteJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// WriteError writes the {"status":"error","message":...} envelope.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, errorResponse{
		Status:  "error",
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// headers are already sent, so a failed encode can only be logged
	if err := json.NewEncoder(w).Encode(data); err != nil {
		Logger.WithError(err).Error("failed to encode JSON response")
	}
}
