package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newZstd(t *testing.T) CompressorInterface {
	t.Helper()
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	logger := &recordingLogger{}
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.dat"), newZstd(t), logger)

	_, err := fs.Get(context.Background(), "default:weightages")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, fs.Len())
	assert.Empty(t, logger.errs)
}

func TestFileStore_ApplyPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.dat")
	comp := newZstd(t)
	ctx := context.Background()

	fs := NewFileStore(path, comp, &recordingLogger{})
	require.NoError(t, fs.Apply(ctx, NewBatch().
		Set(UserKey("default", KeyWeightages), []byte(`{"style":{"boho":1}}`)).
		Set(UserKey("default", KeyLikedProducts), []byte(`["p1"]`))))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reopened := NewFileStore(path, comp, &recordingLogger{})
	val, err := reopened.Get(ctx, UserKey("default", KeyLikedProducts))
	require.NoError(t, err)
	assert.JSONEq(t, `["p1"]`, string(val))
	assert.Equal(t, 2, reopened.Len())
}

func TestFileStore_ApplyRewritesWholeKeyspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	comp := newZstd(t)
	ctx := context.Background()

	fs := NewFileStore(path, comp, &recordingLogger{})
	require.NoError(t, fs.Apply(ctx, NewBatch().Set(UserKey("alice", KeyLikedProducts), []byte(`["p1"]`))))
	require.NoError(t, os.Remove(path))

	require.NoError(t, fs.Apply(ctx, NewBatch().Set(UserKey("bob", KeyLikedProducts), []byte(`["p2"]`))))

	reopened := NewFileStore(path, comp, &recordingLogger{})
	assert.Equal(t, 2, reopened.Len())
	val, err := reopened.Get(ctx, UserKey("alice", KeyLikedProducts))
	require.NoError(t, err)
	assert.Equal(t, `["p1"]`, string(val))
}

func TestFileStore_DeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	ctx := context.Background()
	fs := NewFileStore(path, newZstd(t), &recordingLogger{})

	require.NoError(t, fs.Apply(ctx, NewBatch().Set("a", []byte("1")).Set("b", []byte("2"))))
	require.NoError(t, fs.Apply(ctx, NewBatch().Delete("a")))

	_, err := fs.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	val, err := fs.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", string(val))
}

func TestFileStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.dat"), newZstd(t), &recordingLogger{})
	require.NoError(t, fs.Apply(ctx, NewBatch().Set("k", []byte("abc"))))

	val, _ := fs.Get(ctx, "k")
	val[0] = 'z'

	again, _ := fs.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFileStore_MalformedFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	logger := &recordingLogger{}
	fs := NewFileStore(path, newZstd(t), logger)

	assert.Equal(t, 0, fs.Len())
	assert.GreaterOrEqual(t, logger.warnCount(), 1)
}

func TestFileStore_PlainJSONAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"entries":{"k":"dmFs"}}`), 0644))

	fs := NewFileStore(path, newZstd(t), &recordingLogger{})
	val, err := fs.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "val", string(val))
}

func TestFileStore_FailedWriteKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	ctx := context.Background()
	fs := NewFileStore(path, newZstd(t), &recordingLogger{})
	require.NoError(t, fs.Apply(ctx, NewBatch().Set("k", []byte("v1"))))

	// A directory squatting on the tmp path makes the write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0755))

	err := fs.Apply(ctx, NewBatch().Set("k", []byte("v2")))
	require.Error(t, err)

	val, err := fs.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(val))
}

func TestFileStore_EmptyBatchIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	fs := NewFileStore(path, newZstd(t), &recordingLogger{})

	require.NoError(t, fs.Apply(context.Background(), NewBatch()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestZstdCompressor_RoundTrip(t *testing.T) {
	c := newZstd(t)
	in := []byte(`{"entries":{"default:liked_products":"WyJwMSJd"}}`)

	packed, err := c.Compress(in)
	require.NoError(t, err)
	out, err := c.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = c.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}
