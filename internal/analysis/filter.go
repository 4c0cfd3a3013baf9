package analysis

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Filter selects events with a boolean expression over the event's JSON field names,
// e.g. `attack_type == "ransomware" && !success`.
type Filter struct {
	Expression string
	program    *vm.Program
}

func CompileFilter(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(eventEnv(core.Event{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter: %w", err)
	}
	return &Filter{Expression: expression, program: program}, nil
}

// Match reports whether ev satisfies the filter.
func (f *Filter) Match(ev core.Event) (bool, error) {
	out, err := expr.Run(f.program, eventEnv(ev))
	if err != nil {
		return false, fmt.Errorf("evaluating filter: %w", err)
	}
	b, ok := out.(bool)
	return ok && b, nil
}

// Apply returns the matching events in their original order.
func (f *Filter) Apply(events []core.Event) ([]core.Event, error) {
	var out []core.Event
	for _, ev := range events {
		ok, err := f.Match(ev)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func eventEnv(ev core.Event) map[string]any {
	return map[string]any{
		"timestamp":          ev.Timestamp,
		"event":              string(ev.Kind),
		"user":               ev.User,
		"device":             ev.Device,
		"success":            ev.Success,
		"method":             string(ev.Method),
		"device_posture":     ev.Posture,
		"ip":                 ev.IP,
		"resource":           ev.Resource,
		"decision":           string(ev.Decision),
		"reason":             ev.Reason,
		"attack_type":        string(ev.AttackType),
		"attack_phase":       string(ev.AttackPhase),
		"attempted_password": ev.AttemptedPassword,
		"filename":           ev.Filename,
		"is_attack":          ev.IsAttack(),
		"hour":               ev.Timestamp.In(time.UTC).Hour(),
	}
}
