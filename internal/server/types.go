package server

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}
