package analysis

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// eventLogNames are the per-scenario log names looked for, in order.
var eventLogNames = []string{"events.jsonl", "events.jsonl" + audit.ZstdExtension}

// ReadEvents reads a JSON lines event log. Compressed logs are decoded transparently.
func ReadEvents(path string) ([]core.Event, error) {
	rc, err := audit.OpenEventLog(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	events, err := DecodeEvents(rc)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", path, err)
	}
	return events, nil
}

// DecodeEvents decodes a JSON lines stream. Blank lines are skipped.
func DecodeEvents(r io.Reader) ([]core.Event, error) {
	var events []core.Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var ev core.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Experiment holds the events of every scenario of a run.
type Experiment struct {
	Dir       string
	Scenarios []string
	Events    map[string][]core.Event
}

// LoadExperiment loads every scenario directory below dir that contains an event log.
func LoadExperiment(dir string) (*Experiment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading experiment directory: %w", err)
	}

	exp := &Experiment{
		Dir:    dir,
		Events: make(map[string][]core.Event),
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path, ok := findEventLog(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		events, err := ReadEvents(path)
		if err != nil {
			return nil, err
		}
		exp.Scenarios = append(exp.Scenarios, entry.Name())
		exp.Events[entry.Name()] = events
	}
	sort.Strings(exp.Scenarios)

	if len(exp.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenario event logs found in '%s'", dir)
	}
	return exp, nil
}

func findEventLog(dir string) (string, bool) {
	for _, name := range eventLogNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
	}
	return "", false
}
