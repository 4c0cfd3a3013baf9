package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// ZstdExtension marks compressed event logs.
const ZstdExtension = ".zst"

var _ core.Sink = (*FileSink)(nil)

// FileSink writes one JSON object per line.
// Paths ending in ".zst" are written as a zstd stream.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	zw      *zstd.Encoder
	encoder *json.Encoder
}

func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening event log file: %w", err)
	}

	s := &FileSink{file: file}

	var w io.Writer = file
	if strings.HasSuffix(path, ZstdExtension) {
		zw, err := zstd.NewWriter(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		s.zw = zw
		w = zw
	}
	s.encoder = json.NewEncoder(w)
	return s, nil
}

func (f *FileSink) Write(event core.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(event); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

func (f *FileSink) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.zw != nil {
		if err := f.zw.Flush(); err != nil {
			return fmt.Errorf("flushing zstd stream: %w", err)
		}
	}
	return f.file.Sync()
}

func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.zw != nil {
		if err := f.zw.Close(); err != nil {
			_ = f.file.Close()
			return fmt.Errorf("closing zstd stream: %w", err)
		}
	}
	return f.file.Close()
}

// OpenEventLog opens an event log for reading, transparently decompressing ".zst" files.
func OpenEventLog(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	if !strings.HasSuffix(path, ZstdExtension) {
		return file, nil
	}
	zr, err := zstd.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	return &zstdReadCloser{Decoder: zr, file: file}, nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}
