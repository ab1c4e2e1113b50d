package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/prefixed-greeter/internal/http/health"
	"github.com/janisto/prefixed-greeter/internal/http/hello"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API) {
	health.Register(api)
	hello.Register(api)
}
