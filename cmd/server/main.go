package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/prefixed-greeter/internal/http/routes"
	"github.com/janisto/prefixed-greeter/internal/platform/config"
	applog "github.com/janisto/prefixed-greeter/internal/platform/logging"
	appmiddleware "github.com/janisto/prefixed-greeter/internal/platform/middleware"
	"github.com/janisto/prefixed-greeter/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	serviceName = "prefixed-greeter"
	docsPath    = "/api-docs"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(context.Background(), "config error", err)
		return 1
	}
	applog.Init(applog.Options{Level: cfg.LogLevel, Service: serviceName, Version: Version})

	srv := newServer(cfg.Addr(), newRouter(cfg))
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applog.LogInfo(ctx, "server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("mountPath", cfg.MountPath),
	)
	if err := serve(ctx, srv, ln, cfg.ShutdownTimeout); err != nil {
		applog.LogError(context.Background(), "server error", err)
		return 1
	}
	applog.LogInfo(context.Background(), "server exited")
	return 0
}

// newRouter assembles the middleware stack and mounts the API under cfg.MountPath.
func newRouter(cfg config.Config) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(cfg.MountPath+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; the service only runs behind the ingress proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	apiRouter := chi.NewRouter()
	apiRouter.NotFound(respond.NotFoundHandler())
	apiRouter.MethodNotAllowed(respond.MethodNotAllowedHandler())
	routes.Register(humachi.New(apiRouter, apiConfig(cfg.MountPath)))

	mount := cfg.MountPath
	if mount == "" {
		mount = "/"
	}
	router.Mount(mount, apiRouter)
	return router
}

// apiConfig returns the huma configuration. Response bodies carry only their documented
// fields, so the $schema link transformer is left out.
func apiConfig(mountPath string) huma.Config {
	cfg := huma.DefaultConfig("Prefixed Greeter API", Version)
	cfg.DocsPath = docsPath
	cfg.CreateHooks = nil
	if mountPath != "" {
		cfg.Servers = []*huma.Server{{URL: mountPath}}
	}
	cfg.OnAddOperation = append(cfg.OnAddOperation, addCBORContent)
	return cfg
}

// addCBORContent documents application/cbor next to every application/json body.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// serve runs srv on ln until ctx is done, then shuts down within timeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
