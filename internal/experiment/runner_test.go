package experiment

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/config"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func testConfig(baseDir string) *config.Config {
	return &config.Config{
		Seed:   int64Ptr(42),
		Output: config.OutputConfig{BaseDir: baseDir},
		RunID:  "test-run",
		Scenarios: []core.Scenario{
			{Name: "baseline", SimCount: 200},
			{
				Name:     "zta",
				SimCount: 200,
				Controls: core.AllControls(),
				AttackProfile: &core.AttackProfile{
					Enabled:         true,
					Type:            "lateral_movement",
					CompromisedUser: "bob",
					TargetResources: []string{"/app/db", "/app/admin"},
					Attempts:        40,
				},
			},
			{
				Name:     "baseline_ransomware",
				SimCount: 50,
				AttackProfile: &core.AttackProfile{
					Enabled:         true,
					Type:            "ransomware",
					TargetUsers:     []string{"alice"},
					TargetResources: []string{"/app/files"},
					Attempts:        10,
				},
			},
		},
	}
}

func TestRunner_Run(t *testing.T) {
	base := t.TempDir()
	res, err := NewRunner(testConfig(base)).Run(context.Background())
	require.NoError(t, err)

	outDir := filepath.Join(base, "test-run")
	assert.Equal(t, outDir, res.OutputDir)
	for _, f := range []string{ConfigFile, ResultsFile, ReportFile, PromFile} {
		assert.FileExists(t, filepath.Join(outDir, f))
	}
	for _, sc := range []string{"baseline", "zta", "baseline_ransomware"} {
		assert.FileExists(t, filepath.Join(outDir, sc, EventsFile))
		assert.FileExists(t, filepath.Join(outDir, sc, MetricsFile))
	}

	require.Len(t, res.Scenarios, 3)

	// the summary only covers legitimate events
	zta := res.Scenarios[1]
	assert.Equal(t, 200, zta.Summary.TotalEvents)
	assert.Equal(t, zta.Summary.TotalEvents, zta.Summary.SuccessfulEvents+zta.Summary.FailedEvents)
	require.NotNil(t, zta.Attack)
	assert.Equal(t, 40, zta.Attack.Attempts)

	ransomware := res.Scenarios[2]
	require.NotNil(t, ransomware.Attack)
	assert.Equal(t, 11, ransomware.Attack.Attempts)
	assert.Equal(t, 11, ransomware.Attack.Successful)
	assert.Equal(t, 1.0, ransomware.Attack.SuccessRate)

	var metricsDoc map[string]any
	data, err := os.ReadFile(filepath.Join(outDir, "zta", MetricsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &metricsDoc))
	for _, key := range []string{"total_events", "successful_events", "failed_events", "success_rate"} {
		assert.Contains(t, metricsDoc, key)
	}

	f, err := os.Open(filepath.Join(outDir, ReportFile))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "zta", rows[2][0])
	assert.Equal(t, "lateral_movement", rows[2][5])
}

func TestRunner_EventFileOrder(t *testing.T) {
	base := t.TempDir()
	res, err := NewRunner(testConfig(base)).Run(context.Background())
	require.NoError(t, err)

	rc, err := audit.OpenEventLog(filepath.Join(base, "test-run", "zta", EventsFile))
	require.NoError(t, err)
	defer rc.Close()

	var events []core.Event
	dec := json.NewDecoder(rc)
	for dec.More() {
		var ev core.Event
		require.NoError(t, dec.Decode(&ev))
		events = append(events, ev)
	}

	want := append(append([]core.Event{}, res.Scenarios[1].Legitimate...), res.Scenarios[1].Attacks...)
	if diff := cmp.Diff(want, events, cmpopts.EquateApproxTime(time.Microsecond)); diff != "" {
		t.Errorf("events file mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_Reproducible(t *testing.T) {
	a, err := NewRunner(testConfig(t.TempDir())).Run(context.Background())
	require.NoError(t, err)
	b, err := NewRunner(testConfig(t.TempDir())).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, b.Scenarios, len(a.Scenarios))
	for i := range a.Scenarios {
		assert.Equal(t, a.Scenarios[i].Summary, b.Scenarios[i].Summary)
		assert.Equal(t, a.Scenarios[i].Attack, b.Scenarios[i].Attack)
		assert.Equal(t, a.Scenarios[i].EventsDigest, b.Scenarios[i].EventsDigest)
	}
}

func TestRunner_AttackResolution(t *testing.T) {
	tests := []struct {
		name         string
		controls     core.Controls
		profile      core.AttackProfile
		wantSuccess  bool
		wantReason   string
		wantAttempts int
	}{
		{
			name:     "Credential Stuffing Against ZTA",
			controls: core.AllControls(),
			profile: core.AttackProfile{
				Enabled: true, Type: "credential_stuffing",
				TargetUsers: []string{"alice", "bob", "carol"}, Attempts: 30,
			},
			wantReason:   "Invalid password",
			wantAttempts: 30,
		},
		{
			name:     "Lateral Movement From Unknown Device",
			controls: core.AllControls(),
			profile: core.AttackProfile{
				Enabled: true, Type: "lateral_movement", CompromisedUser: "carol",
				TargetResources: []string{"/app/db"}, Attempts: 10,
			},
			wantReason:   "Device posture unknown",
			wantAttempts: 10,
		},
		{
			name:     "Lateral Movement Without Posture Control",
			controls: core.Controls{Auth: true, Segmentation: true},
			profile: core.AttackProfile{
				Enabled: true, Type: "lateral_movement", CompromisedUser: "carol",
				TargetResources: []string{"/app/files"}, Attempts: 10,
			},
			wantReason:   "Device compromised-1 not allowed",
			wantAttempts: 10,
		},
		{
			name: "Baseline Lets Everything Through",
			profile: core.AttackProfile{
				Enabled: true, Type: "ransomware", CompromisedUser: "bob",
				TargetResources: []string{"/app/files"}, Attempts: 5,
			},
			wantSuccess:  true,
			wantAttempts: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			profile := tt.profile
			sc := core.Scenario{Name: "s", SimCount: 1, Controls: tt.controls, AttackProfile: &profile}

			sink := audit.NewMemorySink()
			res, err := NewRunner(cfg).RunScenario(sc, sink)
			require.NoError(t, err)
			require.Len(t, res.Attacks, tt.wantAttempts)
			require.Len(t, sink.Events(), 1+tt.wantAttempts)

			for _, ev := range res.Attacks {
				assert.Equal(t, tt.wantSuccess, ev.Success)
				assert.Equal(t, core.DecisionOf(tt.wantSuccess), ev.Decision)
				if tt.name == "Lateral Movement Without Posture Control" {
					assert.Regexp(t, `^Device compromised-[1-3] not allowed$`, ev.Reason)
					continue
				}
				assert.Equal(t, tt.wantReason, ev.Reason)
			}
		})
	}
}

func TestRunner_ModeOverride(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Mode = config.ModeZTA

	res, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)
	for _, sc := range res.Scenarios {
		assert.Equal(t, core.AllControls(), sc.Controls, sc.Name)
	}

	// the ransomware scenario is now resolved against the controls
	assert.Zero(t, res.Scenarios[2].Attack.Successful)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(testConfig(t.TempDir())).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_CompressedEvents(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Audit.Compress = true

	res, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(res.OutputDir, "baseline", EventsFile+audit.ZstdExtension))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t,
		Summary{TotalEvents: 4, SuccessfulEvents: 3, FailedEvents: 1, SuccessRate: 0.75},
		Summarize([]core.Event{{Success: true}, {Success: true}, {}, {Success: true}}),
	)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("no space left on device") }

func TestWriteReportCSV(t *testing.T) {
	scenarios := []ScenarioResult{
		{Name: "baseline", Summary: Summary{TotalEvents: 4, SuccessfulEvents: 3, FailedEvents: 1, SuccessRate: 0.75}},
		{
			Name:    "zta_ransomware",
			Summary: Summary{TotalEvents: 2, SuccessfulEvents: 2, SuccessRate: 1},
			Attack:  &AttackSummary{Type: core.AttackRansomware, Attempts: 6, Blocked: 6},
		},
	}

	path := filepath.Join(t.TempDir(), ReportFile)
	require.NoError(t, writeReport(path, scenarios))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, []string{"baseline", "4", "3", "1", "0.7500", "", "", "", "", ""}, rows[1])
	assert.Equal(t, "ransomware", rows[2][5])

	err = writeReportCSV(brokenWriter{}, scenarios)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left on device")

	err = writeReport(filepath.Join(t.TempDir(), "missing", ReportFile), scenarios)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating report")
}
