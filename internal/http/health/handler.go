package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// StatusOK is the only status the health endpoint reports.
const StatusOK = "ok"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status" doc:"Service status" example:"ok"`
}

// Output is the response wrapper for GET /health.
type Output struct {
	Body Response
}

// Register wires the health route into the provided API. The handler does not log so
// liveness probes only show up in the access log.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*Output, error) {
		return &Output{Body: Response{Status: StatusOK}}, nil
	})
}
