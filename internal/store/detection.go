package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Detection is one recorded frame result.
type Detection struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Label        string    `json:"gesture"`
	Confidence   float64   `json:"confidence"`
	HandDetected bool      `json:"hand_detected"`
	CreatedAt    time.Time `json:"created_at"`
}

// DetectionRepository records and queries frame results.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// Record inserts d and fills in its ID and, when unset, CreatedAt.
func (r *DetectionRepository) Record(d *Detection) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.Exec(
		`INSERT INTO detections (session_id, label, confidence, hand_detected, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.SessionID, d.Label, d.Confidence, d.HandDetected, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record detection: %w", err)
	}

	d.ID, err = res.LastInsertId()
	return err
}

// ListBySession returns the most recent detections for a session, newest
// first. A non-positive limit returns them all.
func (r *DetectionRepository) ListBySession(sessionID string, limit int) ([]Detection, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, label, confidence, hand_detected, created_at
		 FROM detections
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}
	defer rows.Close()

	var detections []Detection
	for rows.Next() {
		var d Detection
		if err := rows.Scan(&d.ID, &d.SessionID, &d.Label, &d.Confidence, &d.HandDetected, &d.CreatedAt); err != nil {
			return nil, err
		}
		detections = append(detections, d)
	}

	return detections, rows.Err()
}

// Stats counts the recorded detections of a session per label, skipping
// frames without a hand and frames that stayed Unknown.
func (r *DetectionRepository) Stats(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT label, COUNT(*)
		 FROM detections
		 WHERE session_id = ? AND hand_detected = 1 AND label != 'Unknown'
		 GROUP BY label`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("detection stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		stats[label] = n
	}

	return stats, rows.Err()
}

// DeleteBySession removes every detection recorded for a session and
// returns how many were removed.
func (r *DetectionRepository) DeleteBySession(sessionID string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM detections WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete detections: %w", err)
	}
	return res.RowsAffected()
}
