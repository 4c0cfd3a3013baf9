package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/validation"
)

// Mode overrides the controls of every scenario.
type Mode string

const (
	ModeNone     Mode = ""
	ModeBaseline Mode = "baseline"
	ModeZTA      Mode = "zta"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNone, ModeBaseline, ModeZTA:
		return m, nil
	}
	return ModeNone, fmt.Errorf("invalid mode '%s', must be one of: baseline, zta", s)
}

// Controls returns the controls enforced in this mode.
func (m Mode) Controls() core.Controls {
	if m == ModeZTA {
		return core.AllControls()
	}
	return core.Controls{}
}

// Config is the experiment document.
type Config struct {
	// Seed of every random stream of the run. Required.
	Seed *int64 `yaml:"seed" json:"seed"`

	Output OutputConfig `yaml:"output" json:"output"`

	Scenarios []core.Scenario `yaml:"scenarios" json:"scenarios"`

	// Mode, if set, replaces the controls of every scenario.
	Mode Mode `yaml:"mode,omitempty" json:"mode,omitempty"`

	// RunID names the output directory of the run. A random id is used if empty.
	RunID string `yaml:"run_id,omitempty" json:"run_id,omitempty"`

	Audit AuditConfig `yaml:"audit" json:"audit"`

	// indices of parsed scenarios without a controls key
	missingControls []int
}

type OutputConfig struct {
	BaseDir string `yaml:"base_dir" json:"base_dir"`
}

// AuditConfig selects the sinks events are recorded to.
type AuditConfig struct {
	Format     string `yaml:"format" json:"format,omitempty"` // "jsonl" (default) or "csv"
	Compress   bool   `yaml:"compress" json:"compress,omitempty"`
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path,omitempty"`
}

func (a *AuditConfig) Validate() error {
	switch a.Format {
	case "", "jsonl", "csv":
	default:
		return fmt.Errorf("unknown audit format '%s'", a.Format)
	}
	if a.Compress && a.Format == "csv" {
		return fmt.Errorf("compression is only supported for the jsonl format")
	}
	return nil
}

// MissingKeyError is returned when a required configuration key is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required configuration key '%s'", e.Key)
}

func IsMissingKey(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}

// Load reads and parses the configuration file at the given path.
// JSON documents are accepted as well.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return cfg, nil
}

// Parse decodes a configuration document without validating it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// a scenario without a controls key is incomplete, not a scenario with all controls off
	var presence struct {
		Scenarios []struct {
			Controls *core.Controls `yaml:"controls"`
		} `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	for i, sc := range presence.Scenarios {
		if sc.Controls == nil {
			cfg.missingControls = append(cfg.missingControls, i)
		}
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Seed == nil {
		return &MissingKeyError{Key: "seed"}
	}
	if c.Output.BaseDir == "" {
		return &MissingKeyError{Key: "output.base_dir"}
	}
	if len(c.Scenarios) == 0 {
		return &MissingKeyError{Key: "scenarios"}
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if strings.ContainsAny(c.RunID, `/\`) {
		return fmt.Errorf("run_id '%s' must not contain path separators", c.RunID)
	}
	if err := validation.ValidateScenarios(c.Scenarios); err != nil {
		return fmt.Errorf("validating scenarios: %w", err)
	}
	if c.Mode == ModeNone && len(c.missingControls) > 0 {
		return &MissingKeyError{Key: fmt.Sprintf("scenarios[%d].controls", c.missingControls[0])}
	}
	if err := c.Audit.Validate(); err != nil {
		return fmt.Errorf("validating audit: %w", err)
	}
	return nil
}

// EffectiveScenarios returns the scenarios with the mode override applied.
func (c *Config) EffectiveScenarios() []core.Scenario {
	out := make([]core.Scenario, len(c.Scenarios))
	copy(out, c.Scenarios)
	if c.Mode == ModeNone {
		return out
	}
	for i := range out {
		out[i].Controls = c.Mode.Controls()
	}
	return out
}
