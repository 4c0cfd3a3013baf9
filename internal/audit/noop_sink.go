package audit

import "github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"

// NoopSink discards every event.
type NoopSink struct{}

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) Write(core.Event) error {
	return nil
}

func (n *NoopSink) Flush() error {
	return nil
}

func (n *NoopSink) Close() error {
	return nil
}
