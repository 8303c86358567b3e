// Package api exposes the scenario and indicator engines over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"energy_community/internal/catalogue"
	"energy_community/internal/kpi"
	"energy_community/internal/observability"
	"energy_community/internal/scenario"
	"energy_community/internal/ws"
)

// Server bundles the engines and ambient services behind the router.
type Server struct {
	Catalogue *catalogue.Catalogue
	Scenario  *scenario.Engine
	CountryID int
	Factors   kpi.CitizenFactors
	Metrics   *observability.Metrics
	Hub       *ws.Hub
	Bridge    *ws.Bridge
	Logger    *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Router builds the HTTP API. Prometheus instrumentation wraps every
// route when metrics are configured.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/api/v1/scenario", s.wrap("scenario", http.HandlerFunc(s.handleScenario))).Methods("POST")
	r.Handle("/api/v1/indicators", s.wrap("indicators", http.HandlerFunc(s.handleIndicators))).Methods("POST")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}
	if s.Hub != nil {
		r.Handle("/ws", ws.NewHandler(s.Hub)).Methods("GET")
	}

	return r
}

func (s *Server) wrap(route string, next http.Handler) http.Handler {
	if s.Metrics == nil {
		return next
	}
	return s.Metrics.WrapHandler(route, next)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
