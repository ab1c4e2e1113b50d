// Package hello exposes the greeting and health responses as HTTP Cloud Functions.
package hello

import (
	"encoding/json"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// Greeting matches the message served by the main API.
const Greeting = "Hello from Huma!, this is simple code for testing"

func init() {
	functions.HTTP("Hello", helloHandler)
	functions.HTTP("Health", healthHandler)
}

// Response represents the greeting payload.
type Response struct {
	Message string `json:"message"`
}

// HealthResponse represents the health payload.
type HealthResponse struct {
	Status string `json:"status"`
}

func helloHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, Response{Message: Greeting})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, HealthResponse{Status: "ok"})
}

// writeJSON answers GET with v, preflights with 204, and anything else with 405.
// Every response allows any origin.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	switch r.Method {
	case http.MethodOptions:
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet, http.MethodHead:
	default:
		h.Set("Allow", "GET, HEAD, OPTIONS")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
