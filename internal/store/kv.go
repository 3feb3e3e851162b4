package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is a minimal key-value backend holding raw JSON values.
type KV interface {
	// Name returns the backend identifier (e.g., "file", "redis").
	Name() string

	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases backend resources.
	Close() error
}

// ErrKVClosed is returned when operations are attempted on a closed backend.
var ErrKVClosed = errors.New("storage backend is closed")

// FileKV stores all keys in a single JSON object file.
// Writes replace the file atomically via a temp file and rename.
type FileKV struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewFileKV creates a FileKV at path, creating the parent directory.
// The file itself is created on first write.
func NewFileKV(path string) (*FileKV, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileKV{path: path}, nil
}

// Name returns the backend identifier.
func (f *FileKV) Name() string {
	return "file"
}

// Path returns the backing file path.
func (f *FileKV) Path() string {
	return f.path
}

// Get returns the raw value stored under key.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, false, ErrKVClosed
	}

	entries, err := f.read()
	if err != nil {
		return nil, false, err
	}

	raw, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(raw), true, nil
}

// Set stores value under key. The value must be valid JSON.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrKVClosed
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}

	entries, err := f.read()
	if err != nil {
		return err
	}
	entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, f.path)
}

// Close marks the backend closed.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// read loads the whole file; a missing or empty file is an empty store.
func (f *FileKV) read() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt storage file %s: %w", f.path, err)
	}
	return entries, nil
}

// MemoryKV is an in-process KV, used when nothing needs to outlive the process.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string][]byte)}
}

// Name returns the backend identifier.
func (m *MemoryKV) Name() string {
	return "memory"
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
