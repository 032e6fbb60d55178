// Package catalog holds the in-memory home collection shared by the CLI and server.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hyperjump/homefax/internal/models"
)

var (
	// ErrHomeNotFound is returned when no home has the requested id.
	ErrHomeNotFound = errors.New("home not found")
	// ErrDuplicateID is returned when two homes share an id.
	ErrDuplicateID = errors.New("duplicate home id")
	// ErrEmptyNote is returned when a blank note is saved.
	ErrEmptyNote = errors.New("note is empty")
)

// Catalog is a concurrency-safe, ordered collection of homes with unique ids.
// Only notes can change after load; each change replaces the home by id.
type Catalog struct {
	mu    sync.RWMutex
	homes []models.Home
	index map[string]int
}

// New creates a catalog holding homes in the given order.
func New(homes []models.Home) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(homes); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps the whole collection. On error the catalog is unchanged.
func (c *Catalog) Replace(homes []models.Home) error {
	index := make(map[string]int, len(homes))
	for i, h := range homes {
		if _, dup := index[h.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, h.ID)
		}
		index[h.ID] = i
	}
	copied := append([]models.Home(nil), homes...)

	c.mu.Lock()
	c.homes = copied
	c.index = index
	c.mu.Unlock()
	return nil
}

// Homes returns a snapshot of the collection in order.
func (c *Catalog) Homes() []models.Home {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Home(nil), c.homes...)
}

// Get returns the home with id.
func (c *Catalog) Get(id string) (models.Home, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Home{}, fmt.Errorf("%w: %q", ErrHomeNotFound, id)
	}
	return c.homes[i], nil
}

// SetNotes replaces the notes of the home with id and returns the updated home.
// Leading and trailing whitespace is kept; a blank note is rejected.
func (c *Catalog) SetNotes(id, notes string) (models.Home, error) {
	if strings.TrimSpace(notes) == "" {
		return models.Home{}, ErrEmptyNote
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return models.Home{}, fmt.Errorf("%w: %q", ErrHomeNotFound, id)
	}
	updated := c.homes[i]
	updated.Notes = notes
	c.homes[i] = updated
	return updated, nil
}

// Len returns the number of homes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.homes)
}
