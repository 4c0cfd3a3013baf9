package core

// Scenario is one experimental condition: a number of legitimate events
// evaluated under a set of controls, optionally mixed with an attack.
type Scenario struct {
	Name          string         `yaml:"name" json:"name"`
	SimCount      int            `yaml:"sim_count" json:"sim_count"`
	Controls      Controls       `yaml:"controls" json:"controls"`
	AttackProfile *AttackProfile `yaml:"attack_profile,omitempty" json:"attack_profile,omitempty"`
}

// HasAttack reports whether adversarial traffic is injected into the scenario.
func (s Scenario) HasAttack() bool {
	return s.AttackProfile != nil && s.AttackProfile.Enabled
}

// AttackProfile describes the adversarial traffic injected into a scenario.
type AttackProfile struct {
	Enabled         bool     `yaml:"enabled" json:"enabled"`
	Type            string   `yaml:"type" json:"type"`
	TargetUsers     []string `yaml:"target_users" json:"target_users,omitempty"`
	CompromisedUser string   `yaml:"compromised_user" json:"compromised_user,omitempty"`
	TargetResources []string `yaml:"target_resources" json:"target_resources,omitempty"`
	Attempts        int      `yaml:"attempts" json:"attempts"`
}

// Compromised returns the account used by post-compromise attacks.
// It falls back to the first target user.
func (p AttackProfile) Compromised() string {
	if p.CompromisedUser != "" {
		return p.CompromisedUser
	}
	if len(p.TargetUsers) > 0 {
		return p.TargetUsers[0]
	}
	return ""
}
