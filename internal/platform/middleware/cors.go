package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300

// CORS returns a middleware that lets browsers on any origin call the service with any
// method and any request header. Credentials are never allowed, so the wildcard origin
// is returned verbatim.
//
// Access-Control-Allow-Origin is set on every response, with or without an Origin
// header. go-chi/cors answers preflights; the permissive values are preset first so a
// preflight for a method outside its list is still granted.
func CORS() func(http.Handler) http.Handler {
	handler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodConnect,
			http.MethodOptions,
			http.MethodTrace,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	})

	return func(next http.Handler) http.Handler {
		inner := handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			if isPreflight(r) {
				h.Set("Access-Control-Allow-Methods", strings.ToUpper(r.Header.Get("Access-Control-Request-Method")))
				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					h.Set("Access-Control-Allow-Headers", requested)
				}
				h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
			}
			inner.ServeHTTP(w, r)
		})
	}
}

// isPreflight matches the condition go-chi/cors uses to answer a request as a preflight.
func isPreflight(r *http.Request) bool {
	_, hasOrigin := r.Header["Origin"]
	return hasOrigin && r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
