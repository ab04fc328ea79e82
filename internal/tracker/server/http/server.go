// Package http exposes the tracker's REST API, the websocket event stream
// and the operational endpoints.
package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trackhub-io/trackhub/internal/tracker/broadcast"
	"github.com/trackhub-io/trackhub/internal/tracker/core/service"
	"github.com/trackhub-io/trackhub/pkg/log"
	"github.com/trackhub-io/trackhub/pkg/options"
)

// Server is the HTTP ingress.
type Server struct {
	server  *http.Server
	options *options.HTTPOptions
}

// NewServer wires the API routes for the given service and hub.
func NewServer(opts *options.HTTPOptions, svc *service.Service, hub *broadcast.Hub) *Server {
	h := &handler{svc: svc, hub: hub}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/telemetry", h.ingestTelemetry).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", h.getVehicle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/history", h.getHistory).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/export", h.exportHistory).Methods(http.MethodPost)
	api.HandleFunc("/commands", h.submitCommand).Methods(http.MethodPost)
	api.HandleFunc("/commands/{id}", h.getCommand).Methods(http.MethodGet)
	api.HandleFunc("/commands/{id}/status", h.reportCommandStatus).Methods(http.MethodPut)

	r.HandleFunc("/ws", h.subscribe)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		options: opts,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	log.Info("Starting HTTP server", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
