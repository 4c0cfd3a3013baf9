package usability

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var resultsHeader = []string{"task_type", "duration_seconds", "success", "friction_events", "satisfaction_score"}

// WriteResultsCSV writes one row per task result.
func WriteResultsCSV(path string, results []TaskResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write(resultsHeader)
	for _, r := range results {
		_ = w.Write([]string{
			string(r.Task.Type),
			strconv.FormatFloat(r.Duration.Seconds(), 'f', 3, 64),
			strconv.FormatBool(r.Success),
			strconv.Itoa(len(r.FrictionEvents)),
			strconv.FormatFloat(r.Satisfaction, 'f', 1, 64),
		})
	}
	w.Flush()
	return w.Error()
}
