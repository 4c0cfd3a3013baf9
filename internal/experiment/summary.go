package experiment

import (
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Summary are the outcome metrics of the legitimate events of a scenario.
type Summary struct {
	TotalEvents      int     `json:"total_events"`
	SuccessfulEvents int     `json:"successful_events"`
	FailedEvents     int     `json:"failed_events"`
	SuccessRate      float64 `json:"success_rate"`
}

func Summarize(events []core.Event) Summary {
	var s Summary
	for _, ev := range events {
		s.TotalEvents++
		if ev.Success {
			s.SuccessfulEvents++
		}
	}
	s.FailedEvents = s.TotalEvents - s.SuccessfulEvents
	if s.TotalEvents > 0 {
		s.SuccessRate = float64(s.SuccessfulEvents) / float64(s.TotalEvents)
	}
	return s
}

// AttackSummary are the outcome metrics of the adversarial events of a scenario.
type AttackSummary struct {
	Type        core.AttackType `json:"type"`
	Attempts    int             `json:"attempts"`
	Successful  int             `json:"successful"`
	Blocked     int             `json:"blocked"`
	SuccessRate float64         `json:"success_rate"`
}

func SummarizeAttack(attackType core.AttackType, events []core.Event) AttackSummary {
	s := AttackSummary{Type: attackType}
	for _, ev := range events {
		s.Attempts++
		if ev.Success {
			s.Successful++
		}
	}
	s.Blocked = s.Attempts - s.Successful
	if s.Attempts > 0 {
		s.SuccessRate = float64(s.Successful) / float64(s.Attempts)
	}
	return s
}
