package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"swiperank/internal/models"
	"swiperank/internal/storage"

	json "github.com/goccy/go-json"
)

// FileLoader reads a JSON array of products. Files ending in .zst are
// decompressed first.
type FileLoader struct {
	path       string
	compressor storage.CompressorInterface
}

func NewFileLoader(path string, compressor storage.CompressorInterface) *FileLoader {
	return &FileLoader{path: path, compressor: compressor}
}

func (fl *FileLoader) Load(_ context.Context) ([]*models.Product, error) {
	data, err := os.ReadFile(fl.path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(fl.path, ".zst") {
		data, err = fl.compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", fl.path, err)
		}
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fl.path, err)
	}
	return products, nil
}

func (fl *FileLoader) Source() string {
	return "file " + fl.path
}

func (fl *FileLoader) Close(_ context.Context) error {
	return nil
}
