package dto

// HealthResponse represents the response structure for health checks
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Service   string `json:"service,omitempty"`
	Details   any    `json:"details,omitempty"`
}
