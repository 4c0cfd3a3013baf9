package validation

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

//go:embed event.schema.json
var eventSchema []byte

// EventValidator checks event records against the embedded JSON schema.
type EventValidator struct {
	schema *jsonschema.Schema
}

func NewEventValidator() (*EventValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("event.json", bytes.NewReader(eventSchema)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile("event.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &EventValidator{schema: schema}, nil
}

// Validate checks a single event as it would be serialized.
func (v *EventValidator) Validate(ev core.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	return v.ValidateJSON(data)
}

// ValidateJSON checks a single serialized event record.
func (v *EventValidator) ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// LineError is a validation failure of a single record in a stream.
type LineError struct {
	Line int   `json:"line"`
	Err  error `json:"-"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Report summarizes the validation of an event stream.
type Report struct {
	Records int         `json:"records"`
	Valid   int         `json:"valid"`
	Errors  []LineError `json:"errors,omitempty"`
}

// ValidateStream validates a JSON lines stream. Blank lines are skipped.
// Invalid records are collected in the report, only read failures are returned as error.
func (v *EventValidator) ValidateStream(r io.Reader) (Report, error) {
	var report Report

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		report.Records++
		if err := v.ValidateJSON(data); err != nil {
			report.Errors = append(report.Errors, LineError{Line: line, Err: err})
			continue
		}
		report.Valid++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("reading events: %w", err)
	}
	return report, nil
}
