package usability

import (
	"errors"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
)

var ErrNoTasks = errors.New("task count must be at least 1")

const (
	baseSatisfaction     = 4.0
	frictionPenalty      = 0.5
	overrunPenalty       = 1.0
	overrunFactor        = 1.5
	durationVariance     = 0.2
	postureCheckChance   = 0.1
	sessionTimeoutChance = 0.05
)

// Simulator simulates user tasks and the friction zero trust controls add to them.
type Simulator struct {
	rng *sim.Rand
}

func NewSimulator(rng *sim.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// SimulateWorkday starts with a login and continues with taskCount-1 randomly drawn tasks.
func (s *Simulator) SimulateWorkday(user, device string, taskCount int, controlsEnabled bool) ([]TaskResult, error) {
	if taskCount < 1 {
		return nil, ErrNoTasks
	}

	results := make([]TaskResult, 0, taskCount)
	login, _ := NewTask(TaskLogin, user, device)
	results = append(results, s.Attempt(login, controlsEnabled))

	for i := 1; i < taskCount; i++ {
		task, _ := NewTask(sim.Choice(s.rng, TaskTypes), user, device)
		results = append(results, s.Attempt(task, controlsEnabled))
	}
	return results, nil
}

// Attempt simulates a single attempt of task. Tasks always succeed eventually,
// friction only costs time and satisfaction.
func (s *Simulator) Attempt(task Task, controlsEnabled bool) TaskResult {
	var friction []string

	expected := task.ExpectedDuration.Seconds()
	variance := expected * durationVariance
	seconds := expected + s.rng.Uniform(-variance, variance)

	if controlsEnabled {
		if task.RequiresMFA {
			friction = append(friction, FrictionMFAPrompt)
			seconds += s.rng.Uniform(10, 30)
		}
		if s.rng.Float64() < postureCheckChance {
			friction = append(friction, FrictionPostureCheck)
			seconds += s.rng.Uniform(30, 120)
		}
		if s.rng.Float64() < sessionTimeoutChance {
			friction = append(friction, FrictionSessionTimeout)
			seconds += s.rng.Uniform(30, 60)
		}
	}

	duration := time.Duration(seconds * float64(time.Second))
	return TaskResult{
		Task:           task,
		Success:        true,
		Duration:       duration,
		FrictionEvents: friction,
		Satisfaction:   satisfaction(len(friction), duration, task.ExpectedDuration),
	}
}

func satisfaction(frictionCount int, took, expected time.Duration) float64 {
	score := baseSatisfaction - float64(frictionCount)*frictionPenalty
	if float64(took) > float64(expected)*overrunFactor {
		score -= overrunPenalty
	}
	return min(5.0, max(1.0, score))
}

// SimpleSUS maps the mean satisfaction onto a 0 to 100 scale.
func SimpleSUS(results []TaskResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Satisfaction * 20
	}
	return sum / float64(len(results))
}
