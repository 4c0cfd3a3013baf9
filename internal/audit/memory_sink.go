package audit

import (
	"sync"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var _ core.Sink = (*MemorySink)(nil)

// MemorySink keeps events in memory. A bounded sink drops its oldest events.
type MemorySink struct {
	mu       sync.Mutex
	events   []core.Event
	capacity int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		events: make([]core.Event, 0),
	}
}

// NewBoundedMemorySink keeps at most capacity events.
func NewBoundedMemorySink(capacity int) *MemorySink {
	return &MemorySink{
		events:   make([]core.Event, 0, capacity),
		capacity: capacity,
	}
}

func (m *MemorySink) Write(event core.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.capacity > 0 && len(m.events) >= m.capacity {
		copy(m.events, m.events[1:])
		m.events = m.events[:len(m.events)-1]
	}
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of all recorded events in write order.
func (m *MemorySink) Events() []core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MemorySink) GetRecent(limit int) []core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > len(m.events) {
		limit = len(m.events)
	}
	start := len(m.events) - limit
	out := make([]core.Event, limit)
	copy(out, m.events[start:])
	return out
}

// Find returns at most limit of the most recent events matching filter.
func (m *MemorySink) Find(filter func(event core.Event) bool, limit int) []core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []core.Event
	for _, ev := range m.events {
		if filter(ev) {
			matches = append(matches, ev)
		}
	}
	if len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches
}

func (m *MemorySink) Flush() error {
	return nil
}

func (m *MemorySink) Close() error {
	return nil // nothing to close :)
}
