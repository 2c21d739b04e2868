package testutil

import (
	"context"
	"errors"
	"swiperank/internal/providers"
	"swiperank/internal/storage"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                  sync.Mutex
	Requests            map[string]int
	CacheHits           int
	CacheMisses         int
	PersistenceCalls    int
	PersistenceFailures map[string]int
	Swipes              map[string]int
	UsersInMemory       int
	CatalogSize         int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:            make(map[string]int),
		PersistenceFailures: make(map[string]int),
		Swipes:              make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncPersistenceFailures(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceFailures[op]++
}
func (m *MockMetrics) IncSwipes(direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Swipes[direction]++
}
func (m *MockMetrics) SetUsersInMemory(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersInMemory = n
}
func (m *MockMetrics) SetCatalogSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSize = n
}

func (m *MockMetrics) FailureCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PersistenceFailures[op]
}

var ErrInjected = errors.New("injected store failure")

// FlakyStore wraps a store and fails reads or writes on demand.
type FlakyStore struct {
	*storage.MemoryStore
	mu         sync.Mutex
	FailGet    bool
	FailApply  bool
	ApplyCalls int
	Batches    []*storage.Batch
}

func NewFlakyStore() *FlakyStore {
	return &FlakyStore{MemoryStore: storage.NewMemoryStore()}
}

func (f *FlakyStore) SetFailApply(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailApply = fail
}

func (f *FlakyStore) SetFailGet(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailGet = fail
}

func (f *FlakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.FailGet
	f.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *FlakyStore) Apply(ctx context.Context, b *storage.Batch) error {
	f.mu.Lock()
	f.ApplyCalls++
	f.Batches = append(f.Batches, b)
	fail := f.FailApply
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.MemoryStore.Apply(ctx, b)
}

// Seed writes raw values directly, bypassing failure injection.
func (f *FlakyStore) Seed(values map[string]string) {
	b := storage.NewBatch()
	for k, v := range values {
		b.Set(k, []byte(v))
	}
	_ = f.MemoryStore.Apply(context.Background(), b)
}

// Raw returns the stored value or "" when absent.
func (f *FlakyStore) Raw(key string) string {
	val, err := f.MemoryStore.Get(context.Background(), key)
	if err != nil {
		return ""
	}
	return string(val)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
