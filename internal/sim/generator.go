package sim

import (
	"fmt"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
)

var (
	DefaultUsers     = []string{"alice", "bob", "carol"}
	DefaultDevices   = []string{"laptop-1", "phone-1", "vm-2"}
	DefaultResources = []string{"/app/db", "/app/files", "/app/admin"}
)

const (
	// mfaThreshold is the draw above which an event uses mfa (about 70%).
	mfaThreshold = 0.3
	// baselineThreshold is the draw above which a baseline outcome succeeds
	// or a baseline device is labelled compliant (about 80%).
	baselineThreshold = 0.2
)

// Generator produces legitimate user activity.
type Generator struct {
	rng   *Rand
	eng   *engine.Engine
	users core.UserRepository
	now   func() time.Time

	userIDs   []string
	deviceIDs []string
	resources []string
}

type GeneratorOption func(*Generator)

// WithGeneratorClock sets the clock events are timestamped with.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithPopulation replaces the users, devices and resources events are drawn from.
// Empty lists keep the defaults.
func WithPopulation(users, devices, resources []string) GeneratorOption {
	return func(g *Generator) {
		if len(users) > 0 {
			g.userIDs = users
		}
		if len(devices) > 0 {
			g.deviceIDs = devices
		}
		if len(resources) > 0 {
			g.resources = resources
		}
	}
}

// NewGenerator creates a generator drawing from rng.
// If eng is nil or enforces no controls, outcomes are drawn at random (baseline).
func NewGenerator(rng *Rand, eng *engine.Engine, users core.UserRepository, opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng:       rng,
		eng:       eng,
		users:     users,
		now:       time.Now,
		userIDs:   DefaultUsers,
		deviceIDs: DefaultDevices,
		resources: DefaultResources,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) usesControls() bool {
	return g.eng != nil && g.eng.Controls().Any()
}

// Next generates a single event. The order of random draws is fixed:
// user, device, kind, method, ip, resource (non-login only) and, for the
// baseline, outcome followed by posture.
func (g *Generator) Next() core.Event {
	ev := core.Event{
		User:   Choice(g.rng, g.userIDs),
		Device: Choice(g.rng, g.deviceIDs),
		Kind:   Choice(g.rng, core.EventKinds),
		Method: core.MethodPassword,
	}
	if g.rng.Float64() > mfaThreshold {
		ev.Method = core.MethodMFA
	}
	ev.IP = fmt.Sprintf("10.0.0.%d", g.rng.IntRange(1, 254))
	if ev.Kind != core.EventLogin {
		ev.Resource = Choice(g.rng, g.resources)
	}
	ev.Timestamp = g.now().UTC()

	if !g.usesControls() {
		success := g.rng.Float64() > baselineThreshold
		ev.Posture = string(core.PostureNonCompliant)
		if g.rng.Float64() > baselineThreshold {
			ev.Posture = string(core.PostureCompliant)
		}
		return ev.WithVerdict(core.Verdict{Allowed: success})
	}

	var password string
	if u, ok := g.users.LookupUser(ev.User); ok {
		password = u.Password
	}
	verdict := g.eng.Decide(core.AccessRequest{
		User:     ev.User,
		Password: password,
		Device:   ev.Device,
		Resource: ev.Resource,
		Method:   ev.Method,
	})
	status, _ := g.eng.CheckPosture(ev.Device)
	ev.Posture = string(status)

	return ev.WithVerdict(verdict)
}

// Generate returns n events.
func (g *Generator) Generate(n int) []core.Event {
	events := make([]core.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, g.Next())
	}
	return events
}
