// Package catalog persists run summaries in a SQLite database so repeated
// scans and MCP queries do not have to re-parse every history file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mesa-tools/mesaplot/internal/runs"
)

// Store wraps a SQLite database of run summaries.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

// Put inserts or replaces the summary for a run, keyed by run name.
func (s *Store) Put(ctx context.Context, sum runs.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			name, mass, metallicity, scheme, fov,
			system, color, magnitude,
			log_l, log_teff, log_center_t, log_center_rho,
			age_years, core_mass, models, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			mass = excluded.mass,
			metallicity = excluded.metallicity,
			scheme = excluded.scheme,
			fov = excluded.fov,
			system = excluded.system,
			color = excluded.color,
			magnitude = excluded.magnitude,
			log_l = excluded.log_l,
			log_teff = excluded.log_teff,
			log_center_t = excluded.log_center_t,
			log_center_rho = excluded.log_center_rho,
			age_years = excluded.age_years,
			core_mass = excluded.core_mass,
			models = excluded.models,
			updated_at = excluded.updated_at
	`,
		sum.Name, sum.Mass, sum.Metallicity, sum.Scheme, sum.Fov,
		sum.System, sum.Color, sum.Magnitude,
		sum.LogL, sum.LogTeff, sum.LogCenterT, sum.LogCenterD,
		sum.AgeYears, sum.CoreMass, sum.Models, now)
	if err != nil {
		return fmt.Errorf("failed to store run %s: %w", sum.Name, err)
	}
	return nil
}

// PutAll stores every summary in one transaction.
func (s *Store) PutAll(ctx context.Context, sums []runs.Summary) error {
	for _, sum := range sums {
		if err := s.Put(ctx, sum); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the stored summary for a run name, or nil if absent.
func (s *Store) Get(ctx context.Context, name string) (*runs.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT name, mass, metallicity, scheme, fov,
		       system, color, magnitude,
		       log_l, log_teff, log_center_t, log_center_rho,
		       age_years, core_mass, models
		FROM runs WHERE name = ?`, name)

	sum, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", name, err)
	}
	return &sum, nil
}

// List returns all stored summaries ordered by mass, then name.
func (s *Store) List(ctx context.Context) ([]runs.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, mass, metallicity, scheme, fov,
		       system, color, magnitude,
		       log_l, log_teff, log_center_t, log_center_rho,
		       age_years, core_mass, models
		FROM runs ORDER BY mass, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []runs.Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a run summary by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (runs.Summary, error) {
	var sum runs.Summary
	err := row.Scan(
		&sum.Name, &sum.Mass, &sum.Metallicity, &sum.Scheme, &sum.Fov,
		&sum.System, &sum.Color, &sum.Magnitude,
		&sum.LogL, &sum.LogTeff, &sum.LogCenterT, &sum.LogCenterD,
		&sum.AgeYears, &sum.CoreMass, &sum.Models)
	return sum, err
}
