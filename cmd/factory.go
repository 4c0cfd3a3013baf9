package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/config"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
	"github.com/Tarunchintakunta/Zero-trust-simulator/pkg/client"
)

type Factory struct {
	// RemoteAddr is the address of the ztasim server to connect to.
	RemoteAddr string

	// ConfigPath is the experiment document.
	ConfigPath string

	// Controls selection shared by local evaluation commands.
	Mode     string
	Controls []string
}

func NewFactory() *Factory {
	return &Factory{}
}

// GetClient returns an HTTP client for remote operations.
func (f *Factory) GetClient() (*client.Client, error) {
	server := f.RemoteAddr // prio 1: command-line flag
	if server == "" {
		server = viper.GetString(ServerAddrKey) // prio 2: config/env
	}
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set ZTASIM_SERVER)")
	}
	return client.New(server), nil
}

// Remote reports whether commands should talk to a server instead of evaluating locally.
func (f *Factory) Remote() bool {
	return f.RemoteAddr != "" || viper.GetString(ServerAddrKey) != ""
}

func (f *Factory) LoadConfig() (*config.Config, error) {
	if f.ConfigPath == "" {
		return nil, fmt.Errorf("experiment file not specified (use --config)")
	}
	return config.Load(f.ConfigPath)
}

// SelectedControls resolves --mode and --controls. --controls wins if both are set.
// Without either, all controls are enforced.
func (f *Factory) SelectedControls() (core.Controls, error) {
	if len(f.Controls) > 0 {
		return parseControls(f.Controls)
	}
	if f.Mode == "" {
		return core.AllControls(), nil
	}
	mode, err := config.ParseMode(f.Mode)
	if err != nil {
		return core.Controls{}, err
	}
	return mode.Controls(), nil
}

// LocalEngine creates an engine over the built-in fixtures.
func (f *Factory) LocalEngine() (*engine.Engine, store.Fixtures, error) {
	controls, err := f.SelectedControls()
	if err != nil {
		return nil, store.Fixtures{}, err
	}
	fx := store.DefaultFixtures(time.Now())
	return engine.New(fx.Users, fx.Devices, fx.Policies, controls), fx, nil
}

func parseControls(names []string) (core.Controls, error) {
	var c core.Controls
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "auth":
			c.Auth = true
		case "posture":
			c.Posture = true
		case "segmentation":
			c.Segmentation = true
		case "none", "":
		default:
			return c, fmt.Errorf("unknown control '%s', must be one of: auth, posture, segmentation, none", name)
		}
	}
	return c, nil
}

func (f *Factory) bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.ConfigPath, "config", "f", "", "The experiment configuration file to use")
}

func (f *Factory) bindControlFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.Mode, "mode", "", "Enforce the controls of a mode (baseline, zta)")
	flags.StringSliceVar(&f.Controls, "controls", nil, "Enforce individual controls (auth, posture, segmentation, none)")
}
