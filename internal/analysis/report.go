package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// ScenarioReport collects the security metrics of a single scenario.
// Pointer fields are nil when the metric does not apply.
type ScenarioReport struct {
	Scenario         string         `json:"scenario"`
	Events           int            `json:"events"`
	DetectionLatency *time.Duration `json:"detection_latency,omitempty"`
	EncryptionRate   *float64       `json:"encryption_rate,omitempty"`
	LateralMovement  LateralStats   `json:"lateral_movement"`
	Auth             *AuthRates     `json:"auth,omitempty"`
}

func AnalyzeScenario(name string, events []core.Event) ScenarioReport {
	r := ScenarioReport{Scenario: name, Events: len(events)}
	if d, ok := DetectionLatency(events); ok {
		r.DetectionLatency = &d
	}
	if rate, ok := EncryptionRate(events); ok {
		r.EncryptionRate = &rate
	}
	r.LateralMovement, _ = LateralMovement(events)
	if rates, ok := LoginRates(events); ok {
		r.Auth = &rates
	}
	return r
}

// Analyze computes a report for every scenario of the experiment, optionally
// restricted to the events matching filter.
func Analyze(exp *Experiment, filter *Filter) ([]ScenarioReport, error) {
	reports := make([]ScenarioReport, 0, len(exp.Scenarios))
	for _, name := range exp.Scenarios {
		events := exp.Events[name]
		if filter != nil {
			var err error
			if events, err = filter.Apply(events); err != nil {
				return nil, fmt.Errorf("scenario '%s': %w", name, err)
			}
		}
		reports = append(reports, AnalyzeScenario(name, events))
	}
	return reports, nil
}

var summaryHeader = []string{
	"scenario",
	"detection_latency",
	"encryption_rate",
	"lateral_movement_blocked",
	"lateral_movement_success",
	"auth_success_rate",
	"auth_failure_rate",
}

// WriteSummaryCSV writes one row per scenario. Metrics that do not apply are left empty.
func WriteSummaryCSV(path string, reports []ScenarioReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write(summaryHeader)
	for _, r := range reports {
		row := []string{r.Scenario, "", "", "", "", "", ""}
		if r.DetectionLatency != nil {
			row[1] = strconv.FormatFloat(r.DetectionLatency.Seconds(), 'f', -1, 64)
		}
		if r.EncryptionRate != nil {
			row[2] = strconv.FormatFloat(*r.EncryptionRate, 'f', 4, 64)
		}
		row[3] = strconv.Itoa(r.LateralMovement.Blocked)
		row[4] = strconv.Itoa(r.LateralMovement.Successful)
		if r.Auth != nil {
			row[5] = strconv.FormatFloat(r.Auth.SuccessRate, 'f', 4, 64)
			row[6] = strconv.FormatFloat(r.Auth.FailureRate, 'f', 4, 64)
		}
		_ = w.Write(row)
	}
	w.Flush()
	return w.Error()
}
