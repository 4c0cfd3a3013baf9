package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()

	greenCheck = green("✔")
	redCross   = red("✖")
)

func applyTableFormat(t table.Writer) {
	s := table.StyleRounded
	s.Format.Header = text.FormatDefault
	t.SetStyle(s)
}

// logError logs a failed remote call with its correlation id and returns err.
func logError(err error, correlation, msg string) error {
	var apiErr client.APIError
	if errors.As(err, &apiErr) {
		log.Error().
			Int("status", apiErr.StatusCode).
			Str("correlation_id", correlation).
			Msgf("%s %s: %s", redCross, msg, apiErr.Message)
		return err
	}
	log.Error().Err(err).Str("correlation_id", correlation).Msgf("%s %s", redCross, msg)
	return err
}

func verdictLabel(v core.Verdict) string {
	if v.Allowed {
		return bold(green("allowed"))
	}
	return bold(red("denied"))
}

func controlsLabel(c core.Controls) string {
	if !c.Any() {
		return "none"
	}
	var s string
	for _, pair := range []struct {
		on   bool
		name string
	}{{c.Auth, "auth"}, {c.Posture, "posture"}, {c.Segmentation, "segmentation"}} {
		if !pair.on {
			continue
		}
		if s != "" {
			s += ","
		}
		s += pair.name
	}
	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
