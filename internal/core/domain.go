package core

import (
	"strings"
	"time"
)

// User is a static identity fixture with its credentials.
// Passwords are compared in plain text, this is a simulation and not an authentication system.
type User struct {
	// ID is the unique user name (e.g. "alice").
	ID string `json:"id"`

	// Password is the static password secret.
	Password string `json:"-"`

	// MFASecret is the (unused) seed of the user's second factor.
	MFASecret string `json:"-"`

	// MFAEnabled indicates whether a second factor is required for this user.
	MFAEnabled bool `json:"mfa_enabled"`
}

// Device holds the security attributes used for posture evaluation.
type Device struct {
	ID                string    `json:"id"`
	OSVersion         string    `json:"os_version"`
	FirewallEnabled   bool      `json:"firewall_enabled"`
	AntivirusEnabled  bool      `json:"antivirus_enabled"`
	DiskEncrypted     bool      `json:"disk_encrypted"`
	ScreenLockEnabled bool      `json:"screen_lock_enabled"`
	LastPatchDate     time.Time `json:"last_patch_date"`
}

// Role is the single role assigned to a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleAnalyst   Role = "analyst"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleAnalyst:
		return true
	default:
		return false
	}
}

// QualifiedName renders the role the way it appears in denial reasons, e.g. "UserRole.ADMIN".
func (r Role) QualifiedName() string {
	return "UserRole." + strings.ToUpper(string(r))
}

// AccessPolicy describes who may reach a resource and under which conditions.
type AccessPolicy struct {
	AllowedRoles     []Role   `yaml:"allowed_roles" json:"allowed_roles"`
	AllowedDevices   []string `yaml:"allowed_devices" json:"allowed_devices"`
	RequireMFA       bool     `yaml:"require_mfa" json:"require_mfa"`
	RequireCompliant bool     `yaml:"require_compliant" json:"require_compliant"`
}

func (p AccessPolicy) AllowsRole(role Role) bool {
	for _, r := range p.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (p AccessPolicy) AllowsDevice(device string) bool {
	for _, d := range p.AllowedDevices {
		if d == device {
			return true
		}
	}
	return false
}

// Controls toggles the individual ZTA checks of a scenario.
type Controls struct {
	Auth         bool `yaml:"auth" json:"auth" mapstructure:"auth"`
	Posture      bool `yaml:"posture" json:"posture" mapstructure:"posture"`
	Segmentation bool `yaml:"segmentation" json:"segmentation" mapstructure:"segmentation"`
}

// AllControls enables every check (the "zta" mode).
func AllControls() Controls {
	return Controls{Auth: true, Posture: true, Segmentation: true}
}

// Any reports whether at least one check is active.
// If none is, decisions are not policy driven at all (baseline).
func (c Controls) Any() bool {
	return c.Auth || c.Posture || c.Segmentation
}

// AccessRequest is the input of a single access decision.
type AccessRequest struct {
	User     string     `json:"user"`
	Password string     `json:"password"`
	Device   string     `json:"device"`
	Resource string     `json:"resource,omitempty"`
	Method   AuthMethod `json:"method"`

	// MFACode is the second factor. If nil and Method is mfa, the simulated code is used.
	MFACode *string `json:"mfa_code,omitempty"`
}
