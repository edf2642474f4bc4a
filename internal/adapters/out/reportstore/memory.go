package reportstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"oliveflow/internal/pkg/errs"
)

// MemoryStore is a ports.ReportStore kept in process memory. It is used when
// no bucket is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body io.Reader, _ string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("report key")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("report", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
