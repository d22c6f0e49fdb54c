package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/zhouzirui/aoc-chat/backend/internal/errors"
)

// Client-facing messages for server-side failures.
const (
	MessageSessionNotFound = "Session not found"
	MessageAIFailure       = "Something went wrong with the AI request."
	MessageInternal        = "internal server error"
)

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps err onto a status code and a message that is safe
// to show the caller. Upstream failure details never leave the server.
func RespondServiceError(w http.ResponseWriter, err error) {
	var validation *apperrors.ValidationError
	switch {
	case errors.As(err, &validation):
		RespondError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(w, http.StatusNotFound, MessageSessionNotFound)
	case errors.Is(err, apperrors.ErrExternalService):
		RespondError(w, http.StatusInternalServerError, MessageAIFailure)
	default:
		log.Printf("[http] unhandled error: %v", err)
		RespondError(w, http.StatusInternalServerError, MessageInternal)
	}
}
