package core

// EvaluationTrace captures every step of an access decision.
type EvaluationTrace struct {
	// CorrelationID is the unique identifier for the evaluation request.
	CorrelationID string `yaml:"correlation_id" json:"correlation_id,omitempty"`

	// Request that was evaluated. The password is never part of the trace.
	User     string     `yaml:"user" json:"user"`
	Device   string     `yaml:"device" json:"device"`
	Resource string     `yaml:"resource,omitempty" json:"resource,omitempty"`
	Method   AuthMethod `yaml:"method" json:"method"`

	// Posture is the measured posture of the device, if the posture step ran.
	Posture PostureStatus `yaml:"posture,omitempty" json:"posture,omitempty"`

	// Steps contains the result of every evaluated step, in evaluation order.
	Steps []StepResult `yaml:"steps" json:"steps"`

	// Verdict is the final decision.
	Verdict Verdict `yaml:"verdict" json:"verdict"`
}

// StepResult captures why a single check passed or failed.
type StepResult struct {
	Step    string `yaml:"step" json:"step"`
	Passed  bool   `yaml:"passed" json:"passed"`
	Skipped bool   `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Reason  string `yaml:"reason,omitempty" json:"reason,omitempty"`
}
