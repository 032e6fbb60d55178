// Package storage loads and saves home collections from fixture files and SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
)

// ErrUnsupportedFormat is returned for a path whose extension no source handles.
var ErrUnsupportedFormat = errors.New("unsupported home source format")

// ErrReadOnly is returned when seeding a source that can only be read.
var ErrReadOnly = errors.New("home source is read-only")

// Source supplies a home collection.
type Source interface {
	// Load returns every home in its stored order.
	Load(ctx context.Context) ([]models.Home, error)
	Close() error
}

// Sink replaces a stored home collection.
type Sink interface {
	SaveHomes(ctx context.Context, homes []models.Home) error
}

// SourceSink is a store that can be both read and seeded.
type SourceSink interface {
	Source
	Sink
}

// Open returns the store for path, chosen by extension: .json, .yaml and .yml
// are fixture files, .xlsx is a read-only export workbook, and .db, .sqlite
// and .sqlite3 are SQLite databases.
func Open(path string) (SourceSink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml", ".xlsx":
		return NewFileSource(path)
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
