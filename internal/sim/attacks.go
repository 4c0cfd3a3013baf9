package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var (
	commonPasswords = []string{
		"password123",
		"admin123",
		"letmein",
		"welcome1",
		"123456",
		"qwerty",
		"monkey123",
		"football",
	}
	malwarePatterns = []string{
		"ransomware.exe",
		"cryptor.dll",
		"backdoor.sh",
		"keylogger.bin",
		"exploit.py",
	}
)

var (
	ErrNoTargetUsers     = errors.New("no target users given")
	ErrNoTargetResources = errors.New("no target resources given")
	ErrNegativeAttempts  = errors.New("attempts must not be negative")
)

// AttackSimulator produces adversarial events. The outcome of every event is
// left as a failure; the caller resolves it against the active controls.
type AttackSimulator struct {
	rng *Rand
	now func() time.Time
}

func NewAttackSimulator(rng *Rand) *AttackSimulator {
	return &AttackSimulator{
		rng: rng,
		now: time.Now,
	}
}

// WithClock sets the clock events are timestamped with.
func (s *AttackSimulator) WithClock(now func() time.Time) *AttackSimulator {
	s.now = now
	return s
}

// Simulate dispatches on the profile's attack type.
func (s *AttackSimulator) Simulate(profile core.AttackProfile) ([]core.Event, error) {
	t, err := core.ParseAttackType(profile.Type)
	if err != nil {
		return nil, err
	}

	switch t {
	case core.AttackCredentialStuffing:
		return s.CredentialStuffing(profile.TargetUsers, profile.Attempts)
	case core.AttackLateralMovement:
		return s.LateralMovement(profile.Compromised(), profile.TargetResources, profile.Attempts)
	case core.AttackRansomware:
		return s.Ransomware(profile.Compromised(), profile.TargetResources, profile.Attempts)
	default:
		return nil, fmt.Errorf("%w: '%s'", core.ErrUnsupportedAttackType, t)
	}
}

func (s *AttackSimulator) base(kind core.EventKind, user string) core.Event {
	return core.Event{
		Timestamp: s.now().UTC(),
		Kind:      kind,
		User:      user,
		Success:   false,
		Method:    core.MethodPassword,
		Posture:   string(core.PostureNonCompliant),
		Decision:  core.DecisionDeny,
	}
}

// CredentialStuffing tries dictionary passwords against random target users.
func (s *AttackSimulator) CredentialStuffing(targetUsers []string, attempts int) ([]core.Event, error) {
	if len(targetUsers) == 0 {
		return nil, ErrNoTargetUsers
	}
	if attempts < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeAttempts, attempts)
	}

	events := make([]core.Event, 0, attempts)
	for i := 0; i < attempts; i++ {
		ev := s.base(core.EventLogin, Choice(s.rng, targetUsers))
		ev.AttemptedPassword = Choice(s.rng, commonPasswords)
		ev.Device = fmt.Sprintf("attacker-%d", s.rng.IntRange(1, 5))
		ev.IP = fmt.Sprintf("192.168.1.%d", s.rng.IntRange(1, 254))
		ev.AttackType = core.AttackCredentialStuffing
		ev.AttackPhase = core.PhaseInitialAccess
		events = append(events, ev)
	}
	return events, nil
}

// LateralMovement probes resources from a compromised account.
func (s *AttackSimulator) LateralMovement(user string, resources []string, attempts int) ([]core.Event, error) {
	if user == "" {
		return nil, ErrNoTargetUsers
	}
	if len(resources) == 0 {
		return nil, ErrNoTargetResources
	}
	if attempts < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeAttempts, attempts)
	}

	events := make([]core.Event, 0, attempts)
	for i := 0; i < attempts; i++ {
		ev := s.base(core.EventAccess, user)
		ev.Resource = Choice(s.rng, resources)
		ev.Device = fmt.Sprintf("compromised-%d", s.rng.IntRange(1, 3))
		ev.IP = fmt.Sprintf("10.0.0.%d", s.rng.IntRange(1, 254))
		ev.AttackType = core.AttackLateralMovement
		ev.AttackPhase = core.PhaseLateralMovement
		events = append(events, ev)
	}
	return events, nil
}

// Ransomware drops a payload and then tries to encrypt files.
// It returns attempts+1 events, all sharing the device and ip of the drop.
func (s *AttackSimulator) Ransomware(user string, resources []string, attempts int) ([]core.Event, error) {
	if user == "" {
		return nil, ErrNoTargetUsers
	}
	if len(resources) == 0 {
		return nil, ErrNoTargetResources
	}
	if attempts < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeAttempts, attempts)
	}

	events := make([]core.Event, 0, attempts+1)

	drop := s.base(core.EventFileWrite, user)
	drop.Device = fmt.Sprintf("compromised-%d", s.rng.IntRange(1, 3))
	drop.IP = fmt.Sprintf("10.0.0.%d", s.rng.IntRange(1, 254))
	drop.Resource = Choice(s.rng, resources)
	drop.Filename = Choice(s.rng, malwarePatterns)
	drop.AttackType = core.AttackRansomware
	drop.AttackPhase = core.PhaseInitialAccess
	events = append(events, drop)

	for i := 0; i < attempts; i++ {
		ev := s.base(core.EventFileWrite, user)
		ev.Device = drop.Device
		ev.IP = drop.IP
		ev.Resource = Choice(s.rng, resources)
		ev.Filename = fmt.Sprintf("encrypted_%d.locked", s.rng.IntRange(1, 1000))
		ev.AttackType = core.AttackRansomware
		ev.AttackPhase = core.PhaseImpact
		events = append(events, ev)
	}
	return events, nil
}
