package analysis

import (
	"strings"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// DetectionLatency is the time between the first attack event and the first
// denied event after it. ok is false if there was no attack or no detection.
func DetectionLatency(events []core.Event) (latency time.Duration, ok bool) {
	var firstAttack time.Time
	for _, ev := range events {
		if ev.IsAttack() && (firstAttack.IsZero() || ev.Timestamp.Before(firstAttack)) {
			firstAttack = ev.Timestamp
		}
	}
	if firstAttack.IsZero() {
		return 0, false
	}

	var firstDetection time.Time
	for _, ev := range events {
		if ev.Success || ev.Decision != core.DecisionDeny || !ev.Timestamp.After(firstAttack) {
			continue
		}
		if firstDetection.IsZero() || ev.Timestamp.Before(firstDetection) {
			firstDetection = ev.Timestamp
		}
	}
	if firstDetection.IsZero() {
		return 0, false
	}
	return firstDetection.Sub(firstAttack), true
}

// EncryptionRate is the share of ransomware encryption attempts that succeeded.
func EncryptionRate(events []core.Event) (rate float64, ok bool) {
	var total, succeeded int
	for _, ev := range events {
		if ev.AttackType != core.AttackRansomware || ev.Kind != core.EventFileWrite {
			continue
		}
		if !strings.Contains(ev.Filename, "encrypted_") {
			continue
		}
		total++
		if ev.Success {
			succeeded++
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(succeeded) / float64(total), true
}

type LateralStats struct {
	Attempts   int `json:"attempts"`
	Successful int `json:"successful"`
	Blocked    int `json:"blocked"`
}

func LateralMovement(events []core.Event) (stats LateralStats, ok bool) {
	for _, ev := range events {
		if ev.AttackType != core.AttackLateralMovement {
			continue
		}
		stats.Attempts++
		if ev.Success {
			stats.Successful++
		} else {
			stats.Blocked++
		}
	}
	return stats, stats.Attempts > 0
}

type AuthRates struct {
	SuccessRate float64 `json:"success_rate"`
	FailureRate float64 `json:"failure_rate"`
}

// LoginRates are the success and failure rates of login events.
func LoginRates(events []core.Event) (rates AuthRates, ok bool) {
	var total, success int
	for _, ev := range events {
		if ev.Kind != core.EventLogin {
			continue
		}
		total++
		if ev.Success {
			success++
		}
	}
	if total == 0 {
		return rates, false
	}
	rates.SuccessRate = float64(success) / float64(total)
	rates.FailureRate = float64(total-success) / float64(total)
	return rates, true
}
