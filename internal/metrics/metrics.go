package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

const namespace = "ztasim"

// Collector holds the simulator's metrics on a private registry, so every run
// (or server) exports only its own series.
type Collector struct {
	Registry *prometheus.Registry

	Events       *prometheus.CounterVec
	Denials      *prometheus.CounterVec
	Attacks      *prometheus.CounterVec
	SuccessRate  *prometheus.GaugeVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Simulated events by scenario, origin and decision.",
			},
			[]string{"scenario", "origin", "decision"},
		),
		Denials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "denials_total",
				Help:      "Denied events by scenario and reason.",
			},
			[]string{"scenario", "reason"},
		),
		Attacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attack_events_total",
				Help:      "Adversarial events by scenario, attack type, phase and outcome.",
			},
			[]string{"scenario", "attack_type", "phase", "outcome"},
		),
		SuccessRate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "legitimate_success_rate",
				Help:      "Share of legitimate events that were allowed.",
			},
			[]string{"scenario"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served by the decision API.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of the decision API.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// Observe counts a single event of a scenario.
func (c *Collector) Observe(scenario string, ev core.Event) {
	origin := "legitimate"
	if ev.IsAttack() {
		origin = "attack"
		outcome := "blocked"
		if ev.Success {
			outcome = "succeeded"
		}
		c.Attacks.WithLabelValues(scenario, string(ev.AttackType), string(ev.AttackPhase), outcome).Inc()
	}

	c.Events.WithLabelValues(scenario, origin, string(core.DecisionOf(ev.Success))).Inc()
	if !ev.Success && ev.Reason != "" {
		c.Denials.WithLabelValues(scenario, ev.Reason).Inc()
	}
}

// Sink returns a sink that counts every event written to it for scenario.
func (c *Collector) Sink(scenario string) core.Sink {
	return &sink{c: c, scenario: scenario}
}

// WriteTextfile writes all series in the text exposition format, e.g. for the node exporter.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

type sink struct {
	c        *Collector
	scenario string
}

func (s *sink) Write(ev core.Event) error {
	s.c.Observe(s.scenario, ev)
	return nil
}

func (s *sink) Flush() error {
	return nil
}

func (s *sink) Close() error {
	return nil
}
