package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Overrides are command line values that take precedence over the document.
type Overrides struct {
	Mode      string `mapstructure:"mode"`
	Seed      *int64 `mapstructure:"seed"`
	RunID     string `mapstructure:"run_id"`
	OutputDir string `mapstructure:"output_dir"`
}

// DecodeOverrides decodes loosely typed values, e.g. collected from flags or the environment.
// Unset and empty values are ignored.
func DecodeOverrides(values map[string]any) (Overrides, error) {
	clean := make(map[string]any, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		clean[k] = v
	}

	var o Overrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &o,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return o, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(clean); err != nil {
		return o, fmt.Errorf("decoding overrides: %w", err)
	}
	return o, nil
}

// Apply merges the overrides into the configuration. Overrides win.
func (c *Config) Apply(o Overrides) error {
	if o.Mode != "" {
		mode, err := ParseMode(o.Mode)
		if err != nil {
			return err
		}
		c.Mode = mode
	}
	if o.Seed != nil {
		seed := *o.Seed
		c.Seed = &seed
	}
	if o.RunID != "" {
		c.RunID = o.RunID
	}
	if o.OutputDir != "" {
		c.Output.BaseDir = o.OutputDir
	}
	return nil
}
