package catalog

import (
	"context"
	"os"
	"path/filepath"
	"swiperank/internal/storage"
	"swiperank/internal/structures"
	"swiperank/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {"id":"p1","name":"Oversized Hoodie","brand":"Nike","price":4999,"category":"tops",
   "categories":["hoodies"],"product_images":["https://img/p1.jpg"],
   "properties":{"style":"streetwear","color_family":"black","fit":"oversized"}},
  {"id":"p2","name":"Linen Shirt","brand":"Uniqlo","price":2999,"category":"tops",
   "properties":{"fabric":"linen"}}
]`

func TestFileLoader_LoadsPlainJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	products, err := NewFileLoader(path, &testutil.MockCompressor{}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, int64(4999), p.Price)
	assert.Equal(t, []string{"hoodies"}, p.Categories)
	assert.Equal(t, "https://img/p1.jpg", p.CanonicalImage())
	assert.Equal(t, "streetwear", p.Properties.Style)
	assert.Equal(t, "oversized", p.Properties.Fit)
	assert.Equal(t, "linen", products[1].Properties.Fabric)
}

func TestFileLoader_LoadsZstd(t *testing.T) {
	comp, err := storage.NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	packed, err := comp.Compress([]byte(sampleCatalog))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.json.zst")
	require.NoError(t, os.WriteFile(path, packed, 0644))

	products, err := NewFileLoader(path, comp).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLoader(filepath.Join(dir, "missing.json"), &testutil.MockCompressor{}).Load(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":"p1"}`), 0644))
	_, err = NewFileLoader(bad, &testutil.MockCompressor{}).Load(context.Background())
	assert.Error(t, err)
}

func TestNewCatalogProvider_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))
	conf := &structures.Config{Catalog: structures.CatalogConfig{Source: "file", Path: path}}

	cs, cleanup, err := NewCatalogProvider(conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, 2, cs.Len())
}

func TestNewCatalogProvider_MissingFileStartsEmpty(t *testing.T) {
	conf := &structures.Config{Catalog: structures.CatalogConfig{Source: "file", Path: filepath.Join(t.TempDir(), "none.json")}}
	logger := &testutil.MockLogger{}

	cs, cleanup, err := NewCatalogProvider(conf, &testutil.MockCompressor{}, logger, testutil.NewMockMetrics())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, 0, cs.Len())
	assert.Equal(t, 1, logger.Count("error"))
}
