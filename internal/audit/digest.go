package audit

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"hash"
	"sync"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var _ core.Sink = (*DigestSink)(nil)

// DigestSink fingerprints an event stream. Timestamps are excluded, so two runs
// with the same seed produce the same digest.
type DigestSink struct {
	mu    sync.Mutex
	h     hash.Hash
	count int
}

func NewDigestSink() *DigestSink {
	return &DigestSink{h: sha256.New()}
}

func (d *DigestSink) Write(event core.Event) error {
	event.Timestamp = time.Time{}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.h.Write(data)
	d.h.Write([]byte{'\n'})
	d.count++
	return nil
}

// Sum returns the base64 encoded SHA-256 of all events written so far.
func (d *DigestSink) Sum() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return base64.StdEncoding.EncodeToString(d.h.Sum(nil))
}

func (d *DigestSink) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.count
}

func (d *DigestSink) Flush() error {
	return nil
}

func (d *DigestSink) Close() error {
	return nil
}
