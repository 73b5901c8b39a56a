package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/dto"
)

// WriteJSONResponse writes payload wrapped in the success envelope
func WriteJSONResponse(w http.ResponseWriter, status int, message string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.NewSuccessResponse(message, payload))
}

// WriteErrorResponse writes the error envelope with the given status
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string, errDetail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := dto.ErrorResponse{
		Success:    false,
		Message:    message,
		Error:      errDetail,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		StatusCode: status,
	}
	if r != nil {
		resp.Path = r.URL.Path
	}
	json.NewEncoder(w).Encode(resp)
}

// WriteAppError maps a service error to the error envelope
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	message := apperr.Message(err)
	detail := message
	if status == http.StatusInternalServerError {
		// Never leak internal error details to the caller
		detail = "internal server error"
	}
	WriteErrorResponse(w, r, status, message, detail)
}
