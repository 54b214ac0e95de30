package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS vessels (
			vessel_id TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS analysis_records (
			vessel_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			payload JSONB,
			error_message TEXT NOT NULL DEFAULT '',
			generated_at TIMESTAMPTZ NOT NULL,
			last_updated_at TIMESTAMPTZ NOT NULL,
			degraded BOOLEAN NOT NULL DEFAULT FALSE,
			oracle_model TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (vessel_id, kind)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS delay_predictions (
			prediction_id TEXT PRIMARY KEY,
			vessel_id TEXT NOT NULL,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_delay_predictions_vessel_created
		ON delay_predictions(vessel_id, created_at);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with vessel data from a JSON file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed vessels: read %q: %w", jsonPath, err)
	}

	var data []vesselDoc
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed vessels: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed vessels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vessels (vessel_id, doc)
	VALUES ($1, $2)
	ON CONFLICT (vessel_id) DO UPDATE
	SET doc = EXCLUDED.doc;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed vessels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, doc := range data {
		if strings.TrimSpace(doc.VesselID) == "" {
			return fmt.Errorf("seed vessels: item at index %d: vessel_id cannot be empty", i+1)
		}

		blob, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("seed vessels: marshal vessel %q: %w", doc.VesselID, err)
		}
		if _, err := stmt.Exec(doc.VesselID, string(blob)); err != nil {
			return fmt.Errorf("seed vessels: insert vessel_id=%q: %w", doc.VesselID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vessels: commit tx: %w", err)
	}

	return nil
}
