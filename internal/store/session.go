package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session is one presentation run over a deck.
type Session struct {
	ID         string
	DeckPath   string
	Slides     int
	FinalSlide int
	StartedAt  time.Time
	// EndedAt is zero while the session is running.
	EndedAt    time.Time
}

// Running reports whether the session has not been ended yet.
func (s *Session) Running() bool {
	return s.EndedAt.IsZero()
}

// SessionRepository provides access to presentation sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new running session. An empty ID is filled with a fresh UUID.
func (r *SessionRepository) Create(sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	sess.StartedAt = time.Now()
	sess.EndedAt = time.Time{}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, deck_path, slides, final_slide, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.DeckPath, sess.Slides, sess.FinalSlide, sess.StartedAt,
	)
	return err
}

// End marks a session finished on finalSlide.
func (r *SessionRepository) End(id string, finalSlide int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET final_slide = ?, ended_at = ? WHERE id = ?`,
		finalSlide, time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, deck_path, slides, final_slide, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, deck_path, slides, final_slide, started_at, ended_at
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes a session and its events.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	sess := &Session{}
	var ended sql.NullTime

	err := row.Scan(&sess.ID, &sess.DeckPath, &sess.Slides, &sess.FinalSlide, &sess.StartedAt, &ended)
	if err != nil {
		return nil, err
	}

	if ended.Valid {
		sess.EndedAt = ended.Time
	}
	return sess, nil
}
