package engine

import (
	"sync"
	"sync/atomic"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Manager holds the engine shared by concurrent API requests and allows
// swapping the enforced controls without interrupting in-flight decisions.
type Manager struct {
	current atomic.Pointer[Engine]
	mu      sync.Mutex
}

func NewManager(initial *Engine) *Manager {
	m := &Manager{}
	m.current.Store(initial)
	return m
}

func (m *Manager) Engine() *Engine {
	return m.current.Load()
}

// SetControls replaces the active engine with one enforcing controls and returns it.
func (m *Manager) SetControls(controls core.Controls) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidate := m.current.Load().WithControls(controls)
	m.current.Store(candidate)
	return candidate
}
