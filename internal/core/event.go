package core

import (
	"fmt"
	"strings"
	"time"
)

type EventKind string

const (
	EventLogin     EventKind = "login"
	EventAccess    EventKind = "access"
	EventFileWrite EventKind = "file_write"
	EventExec      EventKind = "exec"
)

// EventKinds lists the kinds in the order the generator draws from.
var EventKinds = []EventKind{EventLogin, EventAccess, EventFileWrite, EventExec}

type AuthMethod string

const (
	MethodPassword AuthMethod = "password"
	MethodMFA      AuthMethod = "mfa"
)

type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

// DecisionOf mirrors an outcome into a decision label.
func DecisionOf(success bool) Decision {
	if success {
		return DecisionAllow
	}
	return DecisionDeny
}

type AttackType string

const (
	AttackCredentialStuffing AttackType = "credential_stuffing"
	AttackLateralMovement    AttackType = "lateral_movement"
	AttackDataExfiltration   AttackType = "data_exfiltration"
	AttackRansomware         AttackType = "ransomware"
)

var AttackTypes = []AttackType{
	AttackCredentialStuffing,
	AttackLateralMovement,
	AttackDataExfiltration,
	AttackRansomware,
}

// ParseAttackType parses an attack type case-insensitively.
func ParseAttackType(s string) (AttackType, error) {
	t := AttackType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AttackTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnsupportedAttackType, s)
}

// AttackPhase is the kill-chain stage an adversarial event belongs to.
type AttackPhase string

const (
	PhaseRecon           AttackPhase = "recon"
	PhaseInitialAccess   AttackPhase = "initial_access"
	PhaseLateralMovement AttackPhase = "lateral_movement"
	PhaseExfiltration    AttackPhase = "exfiltration"
	PhaseImpact          AttackPhase = "impact"
)

// Event is one record of the simulated activity log.
// Events are values and are never modified after they were emitted.
type Event struct {
	Timestamp time.Time  `json:"timestamp"`
	Kind      EventKind  `json:"event"`
	User      string     `json:"user"`
	Device    string     `json:"device"`
	Success   bool       `json:"success"`
	Method    AuthMethod `json:"method"`
	Posture   string     `json:"device_posture"`
	IP        string     `json:"ip"`

	Resource string   `json:"resource,omitempty"`
	Decision Decision `json:"decision,omitempty"`
	Reason   string   `json:"reason,omitempty"`

	// adversarial events only
	AttackType        AttackType  `json:"attack_type,omitempty"`
	AttackPhase       AttackPhase `json:"attack_phase,omitempty"`
	AttemptedPassword string      `json:"attempted_password,omitempty"`
	Filename          string      `json:"filename,omitempty"`
}

// IsAttack reports whether the event was produced by the attack simulator.
func (e Event) IsAttack() bool {
	return e.AttackType != ""
}

// WithVerdict returns a copy of the event carrying the outcome of v.
func (e Event) WithVerdict(v Verdict) Event {
	e.Success = v.Allowed
	e.Decision = DecisionOf(v.Allowed)
	e.Reason = v.Reason.String()
	return e
}

// Sink receives event records, one at a time.
// Implementations must be safe for concurrent use and must never interleave records.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}
