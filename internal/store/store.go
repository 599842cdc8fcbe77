// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store reads source company records and persists accepted
// register matches in SQLite. Matches live in their own table keyed by
// company id, so the original company data is never touched; inserting
// a match for an already-matched company is a no-op.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/praktikjakt/scb-match/pkg/types"
)

// Store wraps the companies database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the match
// schema exists. The companies table is created only if absent, so an
// existing database keeps its richer schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			website TEXT,
			location_city TEXT,
			type TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS scb_matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_id INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			score INTEGER,
			city TEXT,
			payload TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scb_matches_company_id ON scb_matches(company_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Unmatched returns companies without a stored match, optionally
// filtered by type and capped at limit (0 means no cap). Order is by id
// so runs are reproducible.
func (s *Store) Unmatched(ctx context.Context, onlyTypes []string, limit int) ([]types.SourceRecord, error) {
	query := `
		SELECT id, name, COALESCE(website, ''), COALESCE(location_city, ''), COALESCE(type, '')
		FROM companies c
		WHERE NOT EXISTS (SELECT 1 FROM scb_matches m WHERE m.company_id = c.id)`
	var args []any

	if len(onlyTypes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(onlyTypes)), ",")
		query += fmt.Sprintf(" AND LOWER(TRIM(type)) IN (%s)", placeholders)
		for _, t := range onlyTypes {
			args = append(args, strings.ToLower(strings.TrimSpace(t)))
		}
	}

	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying unmatched companies: %w", err)
	}
	defer rows.Close()

	var records []types.SourceRecord
	for rows.Next() {
		var r types.SourceRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Website, &r.City, &r.Type); err != nil {
			return nil, fmt.Errorf("scanning company row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AddCompany inserts a source record and returns its id. Used by tests
// and the import path; production databases arrive pre-populated.
func (s *Store) AddCompany(ctx context.Context, rec types.SourceRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (name, website, location_city, type) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Website, rec.City, rec.Type)
	if err != nil {
		return 0, fmt.Errorf("inserting company: %w", err)
	}
	return res.LastInsertId()
}

// HasMatch reports whether a match row exists for the company.
func (s *Store) HasMatch(ctx context.Context, companyID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM scb_matches WHERE company_id = ?`, companyID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking match: %w", err)
	}
	return true, nil
}

// SaveMatch stores an accepted outcome for the company. A second call
// for the same company id is a silent no-op: at most one stored match
// per source id.
func (s *Store) SaveMatch(ctx context.Context, companyID int64, outcome types.Outcome) error {
	if !outcome.Accepted() || outcome.Candidate == nil {
		return fmt.Errorf("refusing to store %s outcome for company %d", outcome.Status, companyID)
	}

	exists, err := s.HasMatch(ctx, companyID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	payload, err := json.Marshal(outcome.Candidate)
	if err != nil {
		return fmt.Errorf("encoding candidate payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scb_matches (company_id, matched, score, city, payload) VALUES (?, 1, ?, ?, ?)`,
		companyID, outcome.Score, outcome.Candidate.City, string(payload))
	if err != nil {
		return fmt.Errorf("inserting match: %w", err)
	}
	return nil
}

// MatchCount returns the number of stored matches.
func (s *Store) MatchCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scb_matches`).Scan(&n)
	return n, err
}
