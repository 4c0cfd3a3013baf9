package experiment

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/config"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/metrics"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

const (
	ConfigFile  = "config.json"
	EventsFile  = "events.jsonl"
	MetricsFile = "metrics.json"
	ResultsFile = "results.json"
	ReportFile  = "report.csv"
	PromFile    = "metrics.prom"
)

// ScenarioResult is the outcome of a single scenario.
type ScenarioResult struct {
	Name         string         `json:"name"`
	Controls     core.Controls  `json:"controls"`
	Summary      Summary        `json:"summary"`
	Attack       *AttackSummary `json:"attack,omitempty"`
	EventsDigest string         `json:"events_digest"`

	// Legitimate and Attack events in emission order.
	Legitimate []core.Event `json:"-"`
	Attacks    []core.Event `json:"-"`
}

// Results is the outcome of a full run.
type Results struct {
	RunID     string           `json:"run_id"`
	Seed      int64            `json:"seed"`
	OutputDir string           `json:"output_dir"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// Runner executes the scenarios of an experiment one after another.
type Runner struct {
	cfg       *config.Config
	now       func() time.Time
	collector *metrics.Collector
	db        *gorm.DB
}

type Option func(*Runner)

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func WithCollector(c *metrics.Collector) Option {
	return func(r *Runner) {
		r.collector = c
	}
}

// WithSQLite additionally stores every event in db.
func WithSQLite(db *gorm.DB) Option {
	return func(r *Runner) {
		r.db = db
	}
}

// NewRunner creates a runner for a validated configuration.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.collector == nil {
		r.collector = metrics.NewCollector()
	}
	return r
}

func (r *Runner) Collector() *metrics.Collector {
	return r.collector
}

func (r *Runner) seed() int64 {
	if r.cfg.Seed == nil {
		return 0
	}
	return *r.cfg.Seed
}

// Run executes all scenarios and writes the output tree
// "<base_dir>/<run_id>/{config.json,results.json,report.csv,metrics.prom,<scenario>/...}".
func (r *Runner) Run(ctx context.Context) (*Results, error) {
	runID := r.cfg.RunID
	if runID == "" {
		runID = xid.New().String()
	}
	outDir := filepath.Join(r.cfg.Output.BaseDir, runID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, ConfigFile), r.cfg); err != nil {
		return nil, err
	}

	results := &Results{
		RunID:     runID,
		Seed:      r.seed(),
		OutputDir: outDir,
	}

	for _, sc := range r.cfg.EffectiveScenarios() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l := log.With().Str("run_id", runID).Str("scenario", sc.Name).Logger()
		l.Info().
			Int("sim_count", sc.SimCount).
			Bool("auth", sc.Controls.Auth).
			Bool("posture", sc.Controls.Posture).
			Bool("segmentation", sc.Controls.Segmentation).
			Msg("running scenario")

		res, err := r.runScenarioToDisk(runID, outDir, sc)
		if err != nil {
			return nil, fmt.Errorf("running scenario '%s': %w", sc.Name, err)
		}

		l.Info().
			Int("total_events", res.Summary.TotalEvents).
			Float64("success_rate", res.Summary.SuccessRate).
			Msg("scenario finished")
		results.Scenarios = append(results.Scenarios, res)
	}

	if err := writeResults(outDir, results); err != nil {
		return nil, err
	}
	if err := r.collector.WriteTextfile(filepath.Join(outDir, PromFile)); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runScenarioToDisk(runID, outDir string, sc core.Scenario) (ScenarioResult, error) {
	scenarioDir := filepath.Join(outDir, sc.Name)
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		return ScenarioResult{}, fmt.Errorf("creating scenario directory: %w", err)
	}

	file, err := r.openEventSink(scenarioDir)
	if err != nil {
		return ScenarioResult{}, err
	}
	sinks := audit.NewMultiSink(file)
	if r.db != nil {
		sinks = append(sinks, audit.NewSQLiteSink(r.db, runID, sc.Name))
	}

	res, err := r.RunScenario(sc, sinks)
	if closeErr := sinks.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing event sinks: %w", closeErr)
	}
	if err != nil {
		return ScenarioResult{}, err
	}

	if err := writeJSON(filepath.Join(scenarioDir, MetricsFile), metricsDocument{
		Summary: res.Summary,
		Attack:  res.Attack,
	}); err != nil {
		return ScenarioResult{}, err
	}
	return res, nil
}

func (r *Runner) openEventSink(dir string) (core.Sink, error) {
	switch r.cfg.Audit.Format {
	case "csv":
		return audit.NewCSVSink(filepath.Join(dir, "events.csv"))
	default:
		path := filepath.Join(dir, EventsFile)
		if r.cfg.Audit.Compress {
			path += audit.ZstdExtension
		}
		return audit.NewFileSink(path)
	}
}

// RunScenario simulates a single scenario and writes its legitimate events
// followed by its attack events to sink. Each scenario draws from fresh
// random streams seeded with the run seed.
func (r *Runner) RunScenario(sc core.Scenario, sink core.Sink) (ScenarioResult, error) {
	fixtures := store.DefaultFixtures(r.now())
	eng := engine.New(fixtures.Users, fixtures.Devices, fixtures.Policies, sc.Controls,
		engine.WithClock(r.now))

	gen := sim.NewGenerator(sim.NewRand(r.seed()), eng, fixtures.Users,
		sim.WithGeneratorClock(r.now))
	legit := gen.Generate(sc.SimCount)

	var attacks []core.Event
	if sc.HasAttack() {
		raw, err := sim.NewAttackSimulator(sim.NewRand(r.seed())).
			WithClock(r.now).
			Simulate(*sc.AttackProfile)
		if err != nil {
			return ScenarioResult{}, fmt.Errorf("simulating attack: %w", err)
		}
		attacks = make([]core.Event, len(raw))
		for i, ev := range raw {
			attacks[i] = Resolve(eng, fixtures.Users, ev)
		}
	}

	digest := audit.NewDigestSink()
	out := audit.NewMultiSink(sink, digest, r.collector.Sink(sc.Name))
	for _, batch := range [][]core.Event{legit, attacks} {
		for _, ev := range batch {
			if err := out.Write(ev); err != nil {
				return ScenarioResult{}, fmt.Errorf("writing event: %w", err)
			}
		}
	}
	if err := out.Flush(); err != nil {
		return ScenarioResult{}, fmt.Errorf("flushing events: %w", err)
	}

	res := ScenarioResult{
		Name:         sc.Name,
		Controls:     sc.Controls,
		Summary:      Summarize(legit),
		EventsDigest: digest.Sum(),
		Legitimate:   legit,
		Attacks:      attacks,
	}
	if sc.HasAttack() {
		t, _ := core.ParseAttackType(sc.AttackProfile.Type)
		as := SummarizeAttack(t, attacks)
		res.Attack = &as
	}
	r.collector.SuccessRate.WithLabelValues(sc.Name).Set(res.Summary.SuccessRate)
	return res, nil
}

// Resolve decides the real outcome of an attack event. Without controls every
// attack succeeds. Credential stuffing presents the guessed password, later
// stages present the stolen password of the compromised account.
func Resolve(eng *engine.Engine, users core.UserRepository, ev core.Event) core.Event {
	if !eng.Controls().Any() {
		return ev.WithVerdict(core.Verdict{Allowed: true})
	}

	req := core.AccessRequest{
		User:     ev.User,
		Device:   ev.Device,
		Resource: ev.Resource,
		Method:   ev.Method,
	}
	if ev.AttackType == core.AttackCredentialStuffing {
		req.Password = ev.AttemptedPassword
	} else if u, ok := users.LookupUser(ev.User); ok {
		req.Password = u.Password
	}
	return ev.WithVerdict(eng.Decide(req))
}

type metricsDocument struct {
	Summary
	Attack *AttackSummary `json:"attack,omitempty"`
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

var reportHeader = []string{
	"scenario", "total_events", "successful_events", "failed_events", "success_rate",
	"attack_type", "attack_attempts", "attack_successful", "attack_blocked", "attack_success_rate",
}

func writeResults(outDir string, results *Results) error {
	byName := make(map[string]ScenarioResult, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		byName[sc.Name] = sc
	}
	if err := writeJSON(filepath.Join(outDir, ResultsFile), byName); err != nil {
		return err
	}

	return writeReport(filepath.Join(outDir, ReportFile), results.Scenarios)
}

func writeReport(path string, scenarios []ScenarioResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report: %w", cerr)
		}
	}()
	return writeReportCSV(f, scenarios)
}

func writeReportCSV(out io.Writer, scenarios []ScenarioResult) error {
	w := csv.NewWriter(out)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	for _, sc := range scenarios {
		row := []string{
			sc.Name,
			strconv.Itoa(sc.Summary.TotalEvents),
			strconv.Itoa(sc.Summary.SuccessfulEvents),
			strconv.Itoa(sc.Summary.FailedEvents),
			strconv.FormatFloat(sc.Summary.SuccessRate, 'f', 4, 64),
			"", "", "", "", "",
		}
		if a := sc.Attack; a != nil {
			row[5] = string(a.Type)
			row[6] = strconv.Itoa(a.Attempts)
			row[7] = strconv.Itoa(a.Successful)
			row[8] = strconv.Itoa(a.Blocked)
			row[9] = strconv.FormatFloat(a.SuccessRate, 'f', 4, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
