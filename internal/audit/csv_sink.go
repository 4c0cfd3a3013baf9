package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var _ core.Sink = (*CSVSink)(nil)

// CSVHeader is the column order of CSV event logs.
var CSVHeader = []string{
	"timestamp", "event", "user", "device", "success", "method", "device_posture", "ip",
	"resource", "decision", "reason",
	"attack_type", "attack_phase", "attempted_password", "filename",
}

// CSVSink writes events as CSV rows. The header is written once for a new file.
type CSVSink struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

func NewCSVSink(path string) (*CSVSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat csv file: %w", err)
	}

	s := &CSVSink{file: file, writer: csv.NewWriter(file)}
	if info.Size() == 0 {
		if err := s.writer.Write(CSVHeader); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("writing csv header: %w", err)
		}
	}
	return s, nil
}

func (c *CSVSink) Write(event core.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(csvRecord(event)); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	return nil
}

func (c *CSVSink) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSVSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	return c.file.Close()
}

func csvRecord(e core.Event) []string {
	return []string{
		e.Timestamp.Format(time.RFC3339Nano),
		string(e.Kind),
		e.User,
		e.Device,
		strconv.FormatBool(e.Success),
		string(e.Method),
		e.Posture,
		e.IP,
		e.Resource,
		string(e.Decision),
		e.Reason,
		string(e.AttackType),
		string(e.AttackPhase),
		e.AttemptedPassword,
		e.Filename,
	}
}
