package hello

// Greeting is the fixed message returned by GET /hello.
const Greeting = "Hello from Huma!, this is simple code for testing"

// Data models the response payload for the hello endpoint.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello from Huma!, this is simple code for testing"`
}

// GetOutput is the response wrapper for GET /hello.
type GetOutput struct {
	Body Data
}
