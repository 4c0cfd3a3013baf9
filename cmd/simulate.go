package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Aliases: []string{"sim"},
	Short:   "Run a single simulation",
	Long:    `Generate legitimate activity, attacks or usability tasks without an experiment document`,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

// openOutput opens the sink for --out. The extension selects the format,
// an empty path discards events.
func openOutput(path string) (core.Sink, error) {
	switch {
	case path == "":
		return audit.NewNoopSink(), nil
	case strings.HasSuffix(path, ".csv"):
		return audit.NewCSVSink(path)
	case strings.HasSuffix(path, ".jsonl"), strings.HasSuffix(path, ".jsonl"+audit.ZstdExtension):
		return audit.NewFileSink(path)
	default:
		return nil, fmt.Errorf("unsupported output '%s', use .jsonl, .jsonl.zst or .csv", path)
	}
}

func writeAll(sink core.Sink, events []core.Event) error {
	for _, ev := range events {
		if err := sink.Write(ev); err != nil {
			return err
		}
	}
	return sink.Close()
}
