package audit

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var _ core.Sink = (*RotatingSink)(nil)

// RotatingSink writes events to one JSONL file per experiment below a directory.
type RotatingSink struct {
	mu      sync.Mutex
	dir     string
	now     func() time.Time
	current *FileSink
}

func NewRotatingSink(dir string) *RotatingSink {
	return &RotatingSink{dir: dir, now: time.Now}
}

// Rotate closes the current file and continues in "<experimentID>.jsonl".
func (r *RotatingSink) Rotate(experimentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rotate(experimentID)
}

func (r *RotatingSink) rotate(experimentID string) error {
	if r.current != nil {
		if err := r.current.Close(); err != nil {
			return fmt.Errorf("closing previous log: %w", err)
		}
		r.current = nil
	}
	next, err := NewFileSink(filepath.Join(r.dir, experimentID+".jsonl"))
	if err != nil {
		return err
	}
	r.current = next
	return nil
}

func (r *RotatingSink) Write(event core.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		if err := r.rotate(r.now().Format("20060102_150405")); err != nil {
			return err
		}
	}
	return r.current.Write(event)
}

func (r *RotatingSink) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}
	return r.current.Flush()
}

func (r *RotatingSink) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}
	err := r.current.Close()
	r.current = nil
	return err
}
