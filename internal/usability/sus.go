package usability

import (
	"math"
)

// SUSQuestions are the ten statements of the System Usability Scale.
// Odd-numbered statements are positive, even-numbered ones negative.
var SUSQuestions = []string{
	"I think that I would like to use this system frequently",
	"I found the system unnecessarily complex",
	"I thought the system was easy to use",
	"I think that I would need support to use this system",
	"I found the various functions well integrated",
	"I thought there was too much inconsistency",
	"Most people would learn to use this system quickly",
	"I found the system very cumbersome to use",
	"I felt very confident using the system",
	"I needed to learn a lot before I could use this system",
}

type SUSConfig struct {
	// ScaleMultiplier converts the raw 0 to 40 score to 0 to 100.
	ScaleMultiplier float64
	// MaxFrictionPenalty caps the points friction can add to a negative statement.
	MaxFrictionPenalty float64
	// EarlyFraction is the share of results considered the learning phase.
	EarlyFraction float64
}

func DefaultSUSConfig() SUSConfig {
	return SUSConfig{
		ScaleMultiplier:    2.5,
		MaxFrictionPenalty: 4,
		EarlyFraction:      1.0 / 3.0,
	}
}

// SUSCalculator derives questionnaire responses from task results and scores them.
type SUSCalculator struct {
	cfg SUSConfig
}

func NewSUSCalculator(cfg SUSConfig) *SUSCalculator {
	return &SUSCalculator{cfg: cfg}
}

// Responses simulates a 1 to 5 answer per SUS statement.
func (c *SUSCalculator) Responses(results []TaskResult) []int {
	if len(results) == 0 {
		out := make([]int, len(SUSQuestions))
		for i := range out {
			out[i] = 3
		}
		return out
	}

	n := float64(len(results))
	var succeeded, friction, satisfactionSum float64
	for _, r := range results {
		if r.Success {
			succeeded++
		}
		friction += float64(len(r.FrictionEvents))
		satisfactionSum += r.Satisfaction
	}
	successRate := succeeded / n
	avgFriction := friction / n
	avgSatisfaction := satisfactionSum / n

	var sq float64
	for _, r := range results {
		d := float64(len(r.FrictionEvents)) - avgFriction
		sq += d * d
	}
	frictionStd := math.Sqrt(sq / n)

	earlyCount := max(1, int(n*c.cfg.EarlyFraction))
	var earlySucceeded float64
	for _, r := range results[:earlyCount] {
		if r.Success {
			earlySucceeded++
		}
	}
	earlySuccess := earlySucceeded / float64(earlyCount)

	negative := func(v float64) float64 {
		return 1 + min(c.cfg.MaxFrictionPenalty, v)
	}

	raw := []float64{
		avgSatisfaction,
		negative(avgFriction),
		successRate * 5,
		negative(avgFriction),
		avgSatisfaction,
		negative(frictionStd),
		successRate * 5,
		negative(avgFriction),
		successRate * 5,
		negative((1 - earlySuccess) * 4),
	}

	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = min(5, max(1, int(math.RoundToEven(v))))
	}
	return out
}

// Score returns the SUS score on a 0 to 100 scale, 0 for no results.
func (c *SUSCalculator) Score(results []TaskResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return float64(RawScore(c.Responses(results))) * c.cfg.ScaleMultiplier
}

// RawScore scores answers to the SUS statements on a 0 to 40 scale.
// Positive statements contribute response-1, negative ones 5-response.
func RawScore(responses []int) int {
	var score int
	for i, r := range responses {
		if i%2 == 0 {
			score += r - 1
		} else {
			score += 5 - r
		}
	}
	return score
}
