// Package devserver runs the chat proxy function as a local HTTP server.
package devserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ChatPath    = "/api/chat"
	NetlifyPath = "/.netlify/functions/langflow-proxy"
)

func NewRouter(fn LambdaHandler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observe(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Method filtering belongs to the function so the responses match the
	// deployed one.
	chat := lambdaAdapter{fn: fn, logger: logger}
	r.Handle(ChatPath, chat)
	r.Handle(NetlifyPath, chat)

	return r
}
