package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hyperjump/homefax/internal/catalog"
	"github.com/hyperjump/homefax/internal/config"
	"github.com/hyperjump/homefax/internal/fixture"
	"github.com/hyperjump/homefax/internal/keyword"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
	"github.com/hyperjump/homefax/internal/search"
	"github.com/hyperjump/homefax/internal/storage"
	"go.uber.org/zap"
)

// Components holds initialized services.
type Components struct {
	Catalog      *catalog.Catalog
	Scorer       *scoring.Engine
	AddressIndex *keyword.BleveIndex
	Speller      *keyword.SpellChecker
	Engine       *search.Engine
	// Source is nil when the homes were generated.
	Source     storage.Source
	SourcePath string
}

// Close releases the source and the address index.
func (c *Components) Close() {
	if c.Source != nil {
		_ = c.Source.Close()
	}
	if c.AddressIndex != nil {
		_ = c.AddressIndex.Close()
	}
}

// Watchable reports whether the homes come from a fixture file that can be
// reloaded on change.
func (c *Components) Watchable() bool {
	_, ok := c.Source.(*storage.FileSource)
	return ok
}

// Reload reads the source again and swaps the catalog, address index and
// spelling dictionary. On error the previous homes stay in place.
func (c *Components) Reload(ctx context.Context) error {
	if c.Source == nil {
		return nil
	}
	homes, err := c.Source.Load(ctx)
	if err != nil {
		return err
	}
	if err := c.Catalog.Replace(homes); err != nil {
		return err
	}
	return c.reindex(ctx)
}

func (c *Components) reindex(ctx context.Context) error {
	if err := c.AddressIndex.Index(ctx, c.Catalog.Homes()); err != nil {
		return fmt.Errorf("failed to index addresses: %w", err)
	}
	if err := c.Speller.Refresh(); err != nil {
		return fmt.Errorf("failed to refresh spelling dictionary: %w", err)
	}
	return nil
}

// openSource picks where homes come from: dataPath, then data.homes_path,
// then a non-empty database at data.database_path. A nil source means demo
// homes should be generated.
func openSource(ctx context.Context, cfg *config.Config, dataPath string) (storage.Source, string, error) {
	path := dataPath
	if path == "" {
		path = cfg.Data.HomesPath
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("failed to open homes source: %w", err)
		}
		src, err := storage.Open(path)
		if err != nil {
			return nil, "", err
		}
		return src, path, nil
	}

	dbPath := cfg.Data.DatabasePath
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) || dbPath == "" {
		return nil, "", nil
	}
	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, "", err
	}
	n, err := db.CountHomes(ctx)
	if err != nil || n == 0 {
		_ = db.Close()
		return nil, "", err
	}
	return db, dbPath, nil
}

func initializeComponents(ctx context.Context, cfg *config.Config, dataPath string, logger *zap.Logger) (*Components, error) {
	scorer := scoring.NewEngine()
	src, srcPath, err := openSource(ctx, cfg, dataPath)
	if err != nil {
		return nil, err
	}

	c := &Components{Scorer: scorer, Source: src, SourcePath: srcPath}
	var homes []models.Home
	if src != nil {
		if homes, err = src.Load(ctx); err != nil {
			c.Close()
			return nil, err
		}
		logger.Info("homes loaded", zap.String("source", srcPath), zap.Int("homes", len(homes)))
	} else {
		homes = fixture.BuildHomes(cfg.Data.GenerateCount, scorer.CurrentYear())
		logger.Info("no homes source configured, generated demo homes", zap.Int("homes", len(homes)))
	}

	if c.Catalog, err = catalog.New(homes); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	if c.AddressIndex, err = keyword.NewBleveIndex(); err != nil {
		c.Close()
		return nil, err
	}
	fuzziness := cfg.Search.FuzzinessOrDefault()
	c.Speller = keyword.NewSpellChecker(c.AddressIndex, keyword.WithMaxDistance(fuzziness))
	if err := c.reindex(ctx); err != nil {
		c.Close()
		return nil, err
	}

	opts := []search.EngineOption{
		search.WithAddressIndex(c.AddressIndex),
		search.WithSuggestions(cfg.Search.SuggestLimit, fuzziness),
		search.WithLogger(logger),
	}
	// Fuzziness 0 asks for exact terms only, so there is nothing to correct.
	if fuzziness > 0 {
		opts = append(opts, search.WithSpellChecker(c.Speller))
	}
	c.Engine = search.NewEngine(scorer, opts...)
	return c, nil
}
