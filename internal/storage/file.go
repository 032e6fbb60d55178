package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/homefax/internal/export"
	"github.com/hyperjump/homefax/internal/models"
)

// FileSource reads and writes a JSON or YAML fixture file. XLSX workbooks in
// the export layout can be read but not written.
type FileSource struct {
	path   string
	format export.Format
}

// NewFileSource creates a FileSource for path. The file need not exist yet.
func NewFileSource(path string) (*FileSource, error) {
	var format export.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = export.FormatJSON
	case ".yaml", ".yml":
		format = export.FormatYAML
	case ".xlsx":
		format = export.FormatXLSX
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return &FileSource{path: path, format: format}, nil
}

// Path returns the fixture file path.
func (f *FileSource) Path() string {
	return f.path
}

// Load parses the file. It holds either one home or a list of homes.
func (f *FileSource) Load(ctx context.Context) ([]models.Home, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read homes file: %w", err)
	}
	homes, err := export.ParseHomes(bytes.NewReader(data), f.format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.path, err)
	}
	return homes, nil
}

// SaveHomes writes homes to the file, creating parent directories. The file
// is written to a temporary sibling and renamed so readers never see a
// partial collection.
func (f *FileSource) SaveHomes(ctx context.Context, homes []models.Home) error {
	if f.format == export.FormatXLSX {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.path)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := export.WriteCollection(&buf, f.format, wrap(homes)); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write homes file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace homes file: %w", err)
	}
	return nil
}

// Close is a no-op; files are opened per call.
func (f *FileSource) Close() error {
	return nil
}

func wrap(homes []models.Home) []models.ScoredHome {
	rows := make([]models.ScoredHome, len(homes))
	for i := range homes {
		rows[i].Home = homes[i]
	}
	return rows
}
