package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVesselsQuery := `
	CREATE TABLE IF NOT EXISTS vessels (
		vessel_id TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	);
	`

	createAnalysesQuery := `
	CREATE TABLE IF NOT EXISTS analysis_records (
		vessel_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		payload TEXT,
		error_message TEXT NOT NULL DEFAULT '',
		generated_at TEXT NOT NULL,
		last_updated_at TEXT NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		oracle_model TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (vessel_id, kind)
	);
	`

	createDelaysQuery := `
	CREATE TABLE IF NOT EXISTS delay_predictions (
		prediction_id TEXT PRIMARY KEY,
		vessel_id TEXT NOT NULL,
		doc TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createDelayIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delay_predictions_vessel_created
	ON delay_predictions(vessel_id, created_at);
	`

	statements := []string{
		createVesselsQuery,
		createAnalysesQuery,
		createDelaysQuery,
		createDelayIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with vessel data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed vessels: read %q: %w", jsonPath, err)
	}

	var data []vesselDoc
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed vessels: parse json: %w", err)
	}

	for i, doc := range data {
		if strings.TrimSpace(doc.VesselID) == "" {
			return fmt.Errorf("seed vessels: item at index %d: vessel_id cannot be empty", i+1)
		}
		if doc.Capacity <= 0 {
			return fmt.Errorf("seed vessels: vessel %q: capacity must be positive", doc.VesselID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed vessels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO vessels (
		vessel_id,
		doc
	)
	VALUES (?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed vessels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range data {
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
