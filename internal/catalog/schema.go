package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
-- One row per evolutionary run (denormalized for single-query retrieval)
CREATE TABLE IF NOT EXISTS runs (
    name TEXT PRIMARY KEY,

    -- Parameters parsed from the run directory name
    mass REAL NOT NULL,
    metallicity REAL NOT NULL,
    scheme TEXT NOT NULL,
    fov REAL NOT NULL,

    -- Photometry
    system TEXT,
    color REAL,
    magnitude REAL,

    -- Final-model state
    log_l REAL,
    log_teff REAL,
    log_center_t REAL,
    log_center_rho REAL,
    age_years REAL,
    core_mass REAL,
    models INTEGER,

    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_mass ON runs(mass);
CREATE INDEX IF NOT EXISTS idx_runs_scheme ON runs(scheme);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the catalog tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		_, err = db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, SchemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("catalog schema version %d is newer than supported version %d", version, SchemaVersion)
	}
	return nil
}
