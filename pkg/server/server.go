package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"mindmate/pkg/config"
	"mindmate/pkg/handlers"
)

func NewHTTPServer(cfg *config.Config, handler *handlers.Handler, logger *logrus.Logger) *http.Server {
	router := mux.NewRouter()

	// API routes
	router.HandleFunc("/chat", handler.Chat).Methods("POST")
	router.HandleFunc("/journal/add", handler.JournalAdd).Methods("POST")
	router.HandleFunc("/journal/history", handler.JournalHistory).Methods("GET")
	router.HandleFunc("/health", handler.Health).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.Use(corsMiddleware(cfg.CORSAllowOrigin))
	router.Use(loggingMiddleware(logger))

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout: 15 * time.Second,
		// Must outlast the completion-provider timeout or slow generations
		// get cut off mid-response.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// corsMiddleware lets the browser client talk to the API from another origin.
func corsMiddleware(allowOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
				"remote":   r.RemoteAddr,
			}).Debug("HTTP request processed")
		})
	}
}
