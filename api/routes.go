package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	cleanedRequest := cleanOrigin(origin)

	if localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(strings.TrimSpace(allowed)) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || app.Config.DevMode || isAllowedOrigin(origin, app.Config.AllowedOrigins) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) http.Handler {
	// Public endpoints
	mux.HandleFunc("/", app.instrument("/", app.home))
	mux.HandleFunc("/v1/detect/edges", app.instrument("/v1/detect/edges", app.detectEdges))
	mux.HandleFunc("/v1/detect/colors", app.instrument("/v1/detect/colors", app.detectColors))
	mux.HandleFunc("/v1/colors/catalog", app.instrument("/v1/colors/catalog", app.getCatalog))
	mux.HandleFunc("/v1/colors/custom", app.instrument("/v1/colors/custom", app.getCustomColors))
	mux.HandleFunc("/v1/auth/token", app.instrument("/v1/auth/token", app.issueOperatorToken))
	mux.Handle("/metrics", app.Metrics.Handler())

	// Operator endpoints
	mux.HandleFunc("/v1/learn/color", app.instrument("/v1/learn/color", app.requireOperator(app.learnColor)))
	mux.HandleFunc("/v1/learn/value", app.instrument("/v1/learn/value", app.requireOperator(app.learnValue)))

	return wrapMuxWithCorsAndOrigins(mux, app)
}
