package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/experiment"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/validation"
)

var simulateAttackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Simulate an attack and resolve it against the controls",
	Example: `  # credential stuffing against two accounts, baseline
  ztasim simulate attack --type credential_stuffing --targets alice,bob --attempts 20 --mode baseline

  # lateral movement from a compromised developer account under full enforcement
  ztasim simulate attack --type lateral_movement --compromised bob --resources /app/db,/app/admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		attackType, _ := cmd.Flags().GetString("type")
		targets, _ := cmd.Flags().GetStringSlice("targets")
		compromised, _ := cmd.Flags().GetString("compromised")
		resources, _ := cmd.Flags().GetStringSlice("resources")
		attempts, _ := cmd.Flags().GetInt("attempts")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		profile := core.AttackProfile{
			Enabled:         true,
			Type:            attackType,
			TargetUsers:     targets,
			CompromisedUser: compromised,
			TargetResources: resources,
			Attempts:        attempts,
		}
		if err := validation.ValidateAttackProfile(profile); err != nil {
			return err
		}

		controls, err := f.SelectedControls()
		if err != nil {
			return err
		}

		fx := store.DefaultFixtures(time.Now())
		eng := engine.New(fx.Users, fx.Devices, fx.Policies, controls)

		raw, err := sim.NewAttackSimulator(sim.NewRand(seed)).Simulate(profile)
		if err != nil {
			return err
		}
		events := make([]core.Event, len(raw))
		for i, ev := range raw {
			events[i] = experiment.Resolve(eng, fx.Users, ev)
		}

		sink, err := openOutput(out)
		if err != nil {
			return err
		}
		if err := writeAll(sink, events); err != nil {
			return err
		}

		t, _ := core.ParseAttackType(attackType)
		s := experiment.SummarizeAttack(t, events)
		icon := greenCheck
		if s.Successful > 0 {
			icon = redCross
		}
		log.Info().
			Str("controls", controlsLabel(controls)).
			Int("attempts", s.Attempts).
			Int("blocked", s.Blocked).
			Msgf("%s %s: %d of %d attempts succeeded", icon, s.Type, s.Successful, s.Attempts)
		return nil
	},
}

func init() {
	simulateCmd.AddCommand(simulateAttackCmd)

	simulateAttackCmd.Flags().StringP("type", "t", "", "Attack type (credential_stuffing, lateral_movement, ransomware)")
	simulateAttackCmd.Flags().StringSlice("targets", nil, "Targeted users")
	simulateAttackCmd.Flags().String("compromised", "", "Compromised account used after initial access (default: first target)")
	simulateAttackCmd.Flags().StringSlice("resources", nil, "Targeted resources")
	simulateAttackCmd.Flags().Int("attempts", 10, "Number of attack attempts")
	simulateAttackCmd.Flags().Int64("seed", 42, "Random seed")
	simulateAttackCmd.Flags().StringP("out", "o", "", "Write events to this file (.jsonl, .jsonl.zst, .csv)")
	f.bindControlFlags(simulateAttackCmd.Flags())
	_ = simulateAttackCmd.MarkFlagRequired("type")
}
