package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sample is a labelled set of hand landmarks collected for later use.
type Sample struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// SampleRepository provides CRUD operations for labelled samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create stores a sample under label and returns it with its new ID.
func (r *SampleRepository) Create(label string, data json.RawMessage) (*Sample, error) {
	sample := &Sample{
		ID:        uuid.NewString(),
		Label:     label,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		`INSERT INTO samples (id, label, data, created_at) VALUES (?, ?, ?, ?)`,
		sample.ID, sample.Label, string(sample.Data), sample.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create sample: %w", err)
	}

	return sample, nil
}

// GetByID retrieves a sample by its ID.
func (r *SampleRepository) GetByID(id string) (*Sample, error) {
	var s Sample
	var data string
	err := r.db.QueryRow(
		`SELECT id, label, data, created_at FROM samples WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Label, &data, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Data = json.RawMessage(data)
	return &s, nil
}

// List returns samples in the order they were collected. An empty label
// returns every sample.
func (r *SampleRepository) List(label string) ([]Sample, error) {
	query := `SELECT id, label, data, created_at FROM samples`
	var args []any
	if label != "" {
		query += ` WHERE label = ?`
		args = append(args, label)
	}
	query += ` ORDER BY rowid`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var data string
		if err := rows.Scan(&s.ID, &s.Label, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Data = json.RawMessage(data)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// CountByLabel returns how many samples exist for each label.
func (r *SampleRepository) CountByLabel() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM samples GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("count samples: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

// Delete removes a sample by its ID.
func (r *SampleRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM samples WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
