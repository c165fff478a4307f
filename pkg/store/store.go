// Package store caches resolved models between the defines and render
// stages, keyed by target name.
package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

// ErrNotFound is returned by Load for an unknown target.
var ErrNotFound = errors.New("store: target not found")

const schema = `CREATE TABLE IF NOT EXISTS models (
	target     TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store is a SQLite file of resolved models.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores m under target, replacing any previous model.
func (s *Store) Save(target string, m *hwdef.Model) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf, hwdef.FormatJSON); err != nil {
		return err
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO models (target, model, updated_at) VALUES (?, ?, ?)`,
		target, buf.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save model %s: %w", target, err)
	}
	return nil
}

// Load returns the model stored under target.
func (s *Store) Load(target string) (*hwdef.Model, error) {
	var data string
	err := s.db.QueryRow(`SELECT model FROM models WHERE target = ?`, target).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", target, err)
	}
	return hwdef.LoadModel(bytes.NewBufferString(data), hwdef.FormatJSON)
}

// Targets lists the stored targets in name order.
func (s *Store) Targets() ([]string, error) {
	rows, err := s.db.Query(`SELECT target FROM models ORDER BY target`)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
