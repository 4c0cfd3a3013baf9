package validation

import (
	"fmt"
	"strings"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// ValidateScenarios checks every scenario of an experiment before any work is done.
func ValidateScenarios(scenarios []core.Scenario) error {
	seenNames := make(map[string]struct{})

	for i, sc := range scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario #%d missing name", i)
		}
		// names become directories below the run directory
		if strings.ContainsAny(sc.Name, `/\`) || sc.Name == "." || sc.Name == ".." {
			return fmt.Errorf("scenario name '%s' must not contain path separators or be '.' or '..'", sc.Name)
		}
		if _, exists := seenNames[sc.Name]; exists {
			return fmt.Errorf("scenario name '%s' is not unique", sc.Name)
		}
		seenNames[sc.Name] = struct{}{}

		if sc.SimCount <= 0 {
			return fmt.Errorf("scenario '%s' must have a positive sim_count, got %d", sc.Name, sc.SimCount)
		}

		if sc.HasAttack() {
			if err := ValidateAttackProfile(*sc.AttackProfile); err != nil {
				return fmt.Errorf("scenario '%s' attack_profile: %w", sc.Name, err)
			}
		}
	}

	return nil
}

// ValidateAttackProfile checks that the profile can be simulated.
func ValidateAttackProfile(p core.AttackProfile) error {
	t, err := core.ParseAttackType(p.Type)
	if err != nil {
		return err
	}
	if t == core.AttackDataExfiltration {
		return fmt.Errorf("%w: '%s' is not simulated", core.ErrUnsupportedAttackType, t)
	}
	if p.Attempts <= 0 {
		return fmt.Errorf("attempts must be positive, got %d", p.Attempts)
	}
	if len(p.TargetUsers) == 0 && p.CompromisedUser == "" {
		return fmt.Errorf("target_users is required")
	}
	if t == core.AttackCredentialStuffing && len(p.TargetUsers) == 0 {
		return fmt.Errorf("target_users is required for %s", t)
	}
	if t != core.AttackCredentialStuffing && len(p.TargetResources) == 0 {
		return fmt.Errorf("target_resources is required for %s", t)
	}
	return nil
}
