package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/homefax/internal/models"
)

// SQLiteStorage stores a home collection in SQLite. Nested values are kept
// as JSON text columns.
type SQLiteStorage struct {
	db *sqlx.DB
}

// homeRow is the flattened table form of a home.
type homeRow struct {
	ID          string  `db:"id"`
	Position    int     `db:"position"`
	Address     string  `db:"address"`
	YearBuilt   int     `db:"year_built"`
	SqFt        int     `db:"sq_ft"`
	Beds        int     `db:"beds"`
	Baths       float64 `db:"baths"`
	LotSqFt     int     `db:"lot_sq_ft"`
	LastSold    string  `db:"last_sold"`
	Systems     string  `db:"systems"`
	Permits     string  `db:"permits"`
	Maintenance string  `db:"maintenance"`
	Disclosures string  `db:"disclosures"`
	Notes       string  `db:"notes"`
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS homes (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		address TEXT NOT NULL,
		year_built INTEGER NOT NULL,
		sq_ft INTEGER NOT NULL,
		beds INTEGER NOT NULL,
		baths REAL NOT NULL,
		lot_sq_ft INTEGER NOT NULL,
		last_sold TEXT NOT NULL DEFAULT 'null',
		systems TEXT NOT NULL DEFAULT 'null',
		permits TEXT NOT NULL DEFAULT '[]',
		maintenance TEXT NOT NULL DEFAULT '[]',
		disclosures TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		seeded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_homes_position ON homes(position);
	`
	_, err := db.Exec(schema)
	return err
}

// Load returns every stored home ordered as it was seeded.
func (s *SQLiteStorage) Load(ctx context.Context) ([]models.Home, error) {
	var rows []homeRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, position, address, year_built, sq_ft, beds, baths, lot_sq_ft,
		        last_sold, systems, permits, maintenance, disclosures, notes
		 FROM homes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query homes: %w", err)
	}
	homes := make([]models.Home, 0, len(rows))
	for _, r := range rows {
		h, err := r.toHome()
		if err != nil {
			return nil, fmt.Errorf("failed to decode home %s: %w", r.ID, err)
		}
		homes = append(homes, h)
	}
	return homes, nil
}

// SaveHomes replaces the stored collection with homes in a single transaction.
func (s *SQLiteStorage) SaveHomes(ctx context.Context, homes []models.Home) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM homes`); err != nil {
		return fmt.Errorf("failed to clear homes: %w", err)
	}
	stmt, err := tx.PrepareNamedContext(ctx,
		`INSERT INTO homes (id, position, address, year_built, sq_ft, beds, baths, lot_sq_ft,
		                    last_sold, systems, permits, maintenance, disclosures, notes)
		 VALUES (:id, :position, :address, :year_built, :sq_ft, :beds, :baths, :lot_sq_ft,
		         :last_sold, :systems, :permits, :maintenance, :disclosures, :notes)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range homes {
		row, err := newHomeRow(i, &homes[i])
		if err != nil {
			return fmt.Errorf("failed to encode home %s: %w", homes[i].ID, err)
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("failed to insert home %s: %w", homes[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit homes: %w", err)
	}
	return nil
}

// CountHomes returns the number of stored homes.
func (s *SQLiteStorage) CountHomes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM homes`)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func newHomeRow(position int, h *models.Home) (homeRow, error) {
	row := homeRow{
		ID:        h.ID,
		Position:  position,
		Address:   h.Address,
		YearBuilt: h.YearBuilt,
		SqFt:      h.SqFt,
		Beds:      h.Beds,
		Baths:     h.Baths,
		LotSqFt:   h.LotSqFt,
		Notes:     h.Notes,
	}
	fields := []struct {
		dst *string
		v   any
	}{
		{&row.LastSold, h.LastSold},
		{&row.Systems, h.Systems},
		{&row.Permits, h.Permits},
		{&row.Maintenance, h.Maintenance},
		{&row.Disclosures, h.Disclosures},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return homeRow{}, err
		}
		*f.dst = string(data)
	}
	return row, nil
}

func (r homeRow) toHome() (models.Home, error) {
	h := models.Home{
		ID:        r.ID,
		Address:   r.Address,
		YearBuilt: r.YearBuilt,
		SqFt:      r.SqFt,
		Beds:      r.Beds,
		Baths:     r.Baths,
		LotSqFt:   r.LotSqFt,
		Notes:     r.Notes,
	}
	fields := []struct {
		src string
		dst any
	}{
		{r.LastSold, &h.LastSold},
		{r.Systems, &h.Systems},
		{r.Permits, &h.Permits},
		{r.Maintenance, &h.Maintenance},
		{r.Disclosures, &h.Disclosures},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return models.Home{}, err
		}
	}
	return h, nil
}
