package audit

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var _ core.Sink = (MultiSink)(nil)

// MultiSink fans every record out to all sinks. A failing sink does not stop
// the others from receiving the record.
type MultiSink []core.Sink

func NewMultiSink(sinks ...core.Sink) MultiSink {
	return MultiSink(sinks)
}

func (m MultiSink) Write(event core.Event) error {
	var errs []error
	for i, s := range m {
		if err := s.Write(event); err != nil {
			log.Error().Err(err).Int("sink", i).Msg("failed to write event to sink")
			errs = append(errs, fmt.Errorf("sink #%d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Flush() error {
	var errs []error
	for i, s := range m {
		if err := s.Flush(); err != nil {
			log.Error().Err(err).Int("sink", i).Msg("failed to flush sink")
			errs = append(errs, fmt.Errorf("sink #%d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for i, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink #%d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
