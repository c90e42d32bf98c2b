// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hearthbot/hearth/internal/core"
)

// ReminderStore handles reminder persistence
type ReminderStore struct {
	db *DB
}

// NewReminderStore creates a new reminder store
func NewReminderStore(db *DB) *ReminderStore {
	return &ReminderStore{db: db}
}

// Create inserts a reminder, assigning a UUID if none is set. A second
// reminder of the same kind for the same reference and user is rejected
// with ErrDuplicateRecord.
func (s *ReminderStore) Create(r *core.Reminder) error {
	inserted, err := s.CreateIfAbsent(r)
	if err != nil {
		return err
	}
	if !inserted {
		return core.ErrDuplicateRecord
	}
	return nil
}

// CreateIfAbsent inserts a reminder unless one of the same
// (kind, reference, user) already exists. Returns whether a row was
// inserted. This is what makes daily pre-generation idempotent.
func (s *ReminderStore) CreateIfAbsent(r *core.Reminder) (bool, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	res, err := s.db.conn.Exec(`
		INSERT OR IGNORE INTO reminders (reminder_id, kind, reference_id, user_id, due_at, message, sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`, r.ID, r.Kind, r.ReferenceID, r.UserID, r.DueAt.UTC(), r.Message, r.CreatedAt)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const reminderColumns = `reminder_id, kind, reference_id, user_id, due_at, message, sent, created_at`

// GetByID returns a reminder by ID
func (s *ReminderStore) GetByID(id string) (*core.Reminder, error) {
	row := s.db.conn.QueryRow(`SELECT `+reminderColumns+` FROM reminders WHERE reminder_id = ?`, id)
	r, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, core.ErrReminderNotFound
	}
	return r, err
}

// Due returns unsent reminders whose due time has passed, oldest first
func (s *ReminderStore) Due(now time.Time) ([]*core.Reminder, error) {
	return s.list(`
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE sent = 0 AND due_at <= ?
		ORDER BY due_at
	`, now.UTC())
}

// ListByReference returns all reminders referencing an event or
// cooking assignment
func (s *ReminderStore) ListByReference(kind core.ReminderKind, referenceID int64) ([]*core.Reminder, error) {
	return s.list(`
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE kind = ? AND reference_id = ?
		ORDER BY due_at
	`, kind, referenceID)
}

// Pending returns unsent reminders regardless of due time, soonest
// first
func (s *ReminderStore) Pending(limit int) ([]*core.Reminder, error) {
	return s.list(`
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE sent = 0
		ORDER BY due_at
		LIMIT ?
	`, limit)
}

// PendingCount returns the number of unsent reminders
func (s *ReminderStore) PendingCount() (int, error) {
	var n int
	err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM reminders WHERE sent = 0`).Scan(&n)
	return n, err
}

// MarkSent flips the sent flag. The flag is monotonic: marking an
// already-sent reminder is a no-op, and there is no way back to unsent.
func (s *ReminderStore) MarkSent(id string) error {
	_, err := s.db.conn.Exec(`
		UPDATE reminders SET sent = 1 WHERE reminder_id = ? AND sent = 0
	`, id)
	return err
}

func (s *ReminderStore) list(query string, args ...interface{}) ([]*core.Reminder, error) {
	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Reminder
	for rows.Next() {
		r, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReminder(scan func(...interface{}) error) (*core.Reminder, error) {
	r := &core.Reminder{}
	err := scan(&r.ID, &r.Kind, &r.ReferenceID, &r.UserID, &r.DueAt, &r.Message, &r.Sent, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}
