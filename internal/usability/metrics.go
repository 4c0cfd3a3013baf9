package usability

// Metrics summarizes the usability of a set of task results.
type Metrics struct {
	Scenario           string             `json:"scenario,omitempty"`
	Tasks              int                `json:"tasks"`
	SUSScore           float64            `json:"sus_score"`
	SimpleSUSScore     float64            `json:"simple_sus_score"`
	CompletionRate     float64            `json:"task_completion_rate"`
	AvgDurationSeconds float64            `json:"avg_task_duration"`
	FrictionPerTask    float64            `json:"friction_events_per_task"`
	AvgSatisfaction    float64            `json:"satisfaction_score"`
	Detailed           map[string]float64 `json:"detailed_metrics"`
}

type Analyzer struct {
	sus *SUSCalculator
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{sus: NewSUSCalculator(DefaultSUSConfig())}
}

// Analyze computes overall metrics and per task type metrics, keyed
// "<task_type>_completion_rate", "<task_type>_avg_duration",
// "<task_type>_avg_friction" and "<task_type>_satisfaction".
func (a *Analyzer) Analyze(scenario string, results []TaskResult) Metrics {
	m := Metrics{
		Scenario: scenario,
		Tasks:    len(results),
		Detailed: make(map[string]float64),
	}
	if len(results) == 0 {
		return m
	}

	overall := aggregate(results)
	m.CompletionRate = overall.completionRate()
	m.AvgDurationSeconds = overall.avgDuration()
	m.FrictionPerTask = overall.avgFriction()
	m.AvgSatisfaction = overall.avgSatisfaction()
	m.SUSScore = a.sus.Score(results)
	m.SimpleSUSScore = SimpleSUS(results)

	byType := make(map[TaskType][]TaskResult)
	for _, r := range results {
		byType[r.Task.Type] = append(byType[r.Task.Type], r)
	}
	for taskType, rs := range byType {
		agg := aggregate(rs)
		prefix := string(taskType) + "_"
		m.Detailed[prefix+"completion_rate"] = agg.completionRate()
		m.Detailed[prefix+"avg_duration"] = agg.avgDuration()
		m.Detailed[prefix+"avg_friction"] = agg.avgFriction()
		m.Detailed[prefix+"satisfaction"] = agg.avgSatisfaction()
	}
	return m
}

type totals struct {
	n            float64
	succeeded    float64
	seconds      float64
	friction     float64
	satisfaction float64
}

func aggregate(results []TaskResult) totals {
	t := totals{n: float64(len(results))}
	for _, r := range results {
		if r.Success {
			t.succeeded++
		}
		t.seconds += r.Duration.Seconds()
		t.friction += float64(len(r.FrictionEvents))
		t.satisfaction += r.Satisfaction
	}
	return t
}

func (t totals) completionRate() float64  { return t.succeeded / t.n }
func (t totals) avgDuration() float64     { return t.seconds / t.n }
func (t totals) avgFriction() float64     { return t.friction / t.n }
func (t totals) avgSatisfaction() float64 { return t.satisfaction / t.n }
