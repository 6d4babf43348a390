package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// APIError is the error body of an Envelope
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every JSON response
type Envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Warn("write json failed")
	}
}

func success(w http.ResponseWriter, data any, requestID string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func fail(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, Envelope{Success: false, Error: &APIError{Code: code, Message: message}, RequestID: requestID})
}
