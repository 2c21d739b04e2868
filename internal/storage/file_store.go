package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"swiperank/internal/providers"
	"sync"

	json "github.com/goccy/go-json"
)

const fileFormatVersion = 1

type fileDocument struct {
	Version int               `json:"version"`
	Entries map[string][]byte `json:"entries"`
}

// FileStore keeps the whole keyspace in memory and rewrites one
// zstd-compressed JSON document on every Apply. Write cost grows with the
// number of users; BadgerStore is the driver for multi-user deployments.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	entries    map[string][]byte
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor CompressorInterface, logger providers.Logger) *FileStore {
	fs := &FileStore{
		path:       path,
		entries:    make(map[string][]byte),
		compressor: compressor,
		logger:     logger,
	}
	fs.load()
	return fs
}

func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	val, ok := fs.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Apply writes the batch to disk first and only then publishes it in memory,
// so a failed write leaves the store exactly as it was.
func (fs *FileStore) Apply(_ context.Context, batch *Batch) error {
	if batch == nil || batch.Len() == 0 {
		return nil
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	next := make(map[string][]byte, len(fs.entries)+len(batch.Sets))
	for k, v := range fs.entries {
		next[k] = v
	}
	for _, k := range batch.Deletes {
		delete(next, k)
	}
	for k, v := range batch.Sets {
		copied := make([]byte, len(v))
		copy(copied, v)
		next[k] = copied
	}

	if err := fs.writeFile(next); err != nil {
		return fmt.Errorf("file store write: %w", err)
	}
	fs.entries = next
	return nil
}

func (fs *FileStore) Maintain(_ context.Context) error {
	return nil
}

// Close is a no-op. Every Apply is already durable on disk.
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.entries)
}

func (fs *FileStore) writeFile(entries map[string][]byte) error {
	jsonData, err := json.Marshal(fileDocument{Version: fileFormatVersion, Entries: entries})
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return err
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.path)
}

// load reads the state file. A missing file is a fresh install; an
// unreadable or malformed one is logged and treated as empty.
func (fs *FileStore) load() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.logger.Errorf(providers.TypeApp, "Failed to read state file %s: %s", fs.path, err)
		}
		return
	}

	decompressed, err := fs.compressor.Decompress(data)
	if err != nil {
		// Hand-seeded state files may be plain JSON.
		fs.logger.Warnf(providers.TypeApp, "State file %s is not compressed, trying plain JSON", fs.path)
		decompressed = data
	}

	var doc fileDocument
	if err := json.Unmarshal(decompressed, &doc); err != nil || doc.Entries == nil {
		fs.logger.Warnf(providers.TypeApp, "Malformed state file %s ignored", fs.path)
		return
	}
	if doc.Version > fileFormatVersion {
		fs.logger.Warnf(providers.TypeApp, "State file %s has newer format version %d", fs.path, doc.Version)
	}
	fs.entries = doc.Entries
}
