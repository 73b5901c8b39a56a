package dto

import "time"

// SuccessResponse is the envelope for every successful API response
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope for every failed API response
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path,omitempty"`
}

// NewSuccessResponse wraps payload in the success envelope
func NewSuccessResponse(message string, payload any) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Message:   message,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Pagination carries page metadata for list responses
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
