package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a single request",
	Long: `Evaluate a single authentication, posture, segmentation or full access request
against the built-in users, devices and policies. With --server the request is
evaluated by a running server instead.`,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func printVerdict(step string, v core.Verdict) {
	icon := redCross
	if v.Allowed {
		icon = greenCheck
	}
	fmt.Printf("%s %s: %s\n", icon, bold(step), verdictLabel(v))
	if reason := v.Reason.String(); reason != "" {
		fmt.Printf("  ↳ %s\n", faint(reason))
	}
}

func printTrace(trace *core.EvaluationTrace) {
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("\n%s for %s on %s", bold("Evaluation Trace"), bold(trace.User), bold(trace.Device))
	if trace.Resource != "" {
		fmt.Printf(" → %s", bold(trace.Resource))
	}
	fmt.Printf(" (method: %s)\n", trace.Method)
	if trace.CorrelationID != "" {
		fmt.Printf("%s\n", faint("correlation: "+trace.CorrelationID))
	}

	fmt.Println(faint("---------------------------------------------------"))

	for _, step := range trace.Steps {
		icon := red("✖")
		if step.Passed {
			icon = green("✔")
		}
		name := step.Step
		if step.Skipped {
			icon = faint("-")
			name = faint(name + " (skipped)")
		}
		fmt.Printf("%s %s\n", icon, bold(name))

		if step.Step == "posture" && trace.Posture != "" {
			fmt.Printf("    %s %s\n", cyan("posture:"), trace.Posture)
		}
		if step.Reason != "" {
			reason := step.Reason
			if step.Passed {
				reason = faint(reason)
			} else {
				reason = yellow(reason)
			}
			fmt.Printf("      ↳ %s\n", reason)
		}
	}

	fmt.Println("---------------------------------------------------")
	if reason := trace.Verdict.Reason.String(); reason != "" {
		fmt.Printf("Decision: %s (%s)\n", verdictLabel(trace.Verdict), reason)
	} else {
		fmt.Printf("Decision: %s\n", verdictLabel(trace.Verdict))
	}
	fmt.Println()
}

func parseMethod(s string) (core.AuthMethod, error) {
	switch m := core.AuthMethod(strings.ToLower(s)); m {
	case core.MethodPassword, core.MethodMFA:
		return m, nil
	}
	return "", fmt.Errorf("unknown method '%s', must be one of: password, mfa", s)
}
