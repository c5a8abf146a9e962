package store

import (
	"database/sql"
	"time"
)

// Event is a navigation or erase action fired during a session.
type Event struct {
	ID        int64
	SessionID string
	Frame     int
	Gesture   string
	Action    string
	// Slide is the slide index after the action was applied.
	Slide     int
	CreatedAt time.Time
}

// EventRepository provides access to session events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record appends an event to its session. The session must exist.
func (r *EventRepository) Record(e *Event) error {
	e.CreatedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO session_events (session_id, frame, gesture, action, slide, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Frame, e.Gesture, e.Action, e.Slide, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// ListBySession retrieves a session's events in the order they were recorded.
func (r *EventRepository) ListBySession(sessionID string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, frame, gesture, action, slide, created_at
		 FROM session_events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Frame, &e.Gesture, &e.Action, &e.Slide, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByAction returns how many times each action fired in a session.
func (r *EventRepository) CountByAction(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT action, COUNT(*) FROM session_events WHERE session_id = ? GROUP BY action`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}

	return counts, rows.Err()
}
