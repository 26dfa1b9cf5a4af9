package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Description: "Returns the health status of the server and its components",
		Tags:        []string{"System"},
	}, s.handleHealth)
}

// ComponentHealth describes the status of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status (ok, degraded, down)"`
	Message string `json:"message,omitempty" doc:"Details when not ok"`
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status (ok, degraded)"`
	Timestamp  time.Time                  `json:"timestamp" doc:"Time of the check"`
	Components map[string]ComponentHealth `json:"components" doc:"Per-component status"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	status := "ok"

	if err := s.store.Ping(ctx); err != nil {
		components["database"] = ComponentHealth{Status: "down", Message: err.Error()}
		status = "degraded"
	} else {
		components["database"] = ComponentHealth{Status: "ok"}
	}

	return &HealthOutput{Body: HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}}, nil
}
