package api

import (
	"net/http"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api/middleware"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/metrics"
)

// recentDecisions bounds the in-memory decision log.
const recentDecisions = 1000

type Server struct {
	manager   *engine.Manager
	collector *metrics.Collector
	recent    *audit.MemorySink
}

// NewServer creates a decision API backed by the engine of manager.
// A nil collector gets a fresh one.
func NewServer(manager *engine.Manager, collector *metrics.Collector) *Server {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Server{
		manager:   manager,
		collector: collector,
		recent:    audit.NewBoundedMemorySink(recentDecisions),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.Handle("GET "+MetricsRoute, s.collector.Handler())

	// decision routes
	mux.HandleFunc("POST "+DecideRoute, s.handleDecide)
	mux.HandleFunc("GET "+DecisionsRoute, s.handleDecisions)
	mux.HandleFunc("POST "+AccessRoute, s.handleAccess)
	mux.HandleFunc("GET "+PostureRoute, s.handlePosture)
	mux.HandleFunc("GET "+ResourcesRoute, s.handleResources)
	mux.HandleFunc("GET "+ControlsRoute, s.handleGetControls)
	mux.HandleFunc("PUT "+ControlsRoute, s.handleSetControls)

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				middleware.MetricsMiddleware(s.collector)(
					mux))))
}
