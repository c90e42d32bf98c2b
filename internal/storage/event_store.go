// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"time"

	"github.com/hearthbot/hearth/internal/core"
)

// EventStore handles event and attendee persistence
type EventStore struct {
	db *DB
}

// NewEventStore creates a new event store
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// Create inserts a new event and returns it with its assigned ID
func (s *EventStore) Create(event *core.Event) error {
	event.CreatedAt = time.Now().UTC()

	res, err := s.db.conn.Exec(`
		INSERT INTO events (title, description, starts_at, created_by, remind_24h, remind_1h, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.Title, event.Description, event.StartsAt.UTC(), event.CreatedBy,
		event.Remind24h, event.Remind1h, event.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = core.EventID(id)
	return nil
}

// GetByID returns an event by ID
func (s *EventStore) GetByID(id core.EventID) (*core.Event, error) {
	event := &core.Event{}
	err := s.db.conn.QueryRow(`
		SELECT event_id, title, description, starts_at, created_by, remind_24h, remind_1h, created_at
		FROM events WHERE event_id = ?
	`, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.StartsAt,
		&event.CreatedBy, &event.Remind24h, &event.Remind1h, &event.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, core.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListUpcoming returns events starting at or after now, soonest first
func (s *EventStore) ListUpcoming(now time.Time, limit int) ([]*core.Event, error) {
	rows, err := s.db.conn.Query(`
		SELECT event_id, title, description, starts_at, created_by, remind_24h, remind_1h, created_at
		FROM events
		WHERE starts_at >= ?
		ORDER BY starts_at
		LIMIT ?
	`, now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*core.Event
	for rows.Next() {
		event := &core.Event{}
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.StartsAt,
			&event.CreatedBy, &event.Remind24h, &event.Remind1h, &event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// SetAttendee upserts an attendee's RSVP for an event
func (s *EventStore) SetAttendee(eventID core.EventID, userID core.UserID, status core.AttendeeStatus) error {
	now := time.Now().UTC()
	_, err := s.db.conn.Exec(`
		INSERT INTO event_attendees (event_id, user_id, status, responded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (event_id, user_id) DO UPDATE SET status = excluded.status, responded_at = excluded.responded_at
	`, eventID, userID, status, now)
	return err
}

// Attendees returns all attendees of an event
func (s *EventStore) Attendees(eventID core.EventID) ([]*core.Attendee, error) {
	rows, err := s.db.conn.Query(`
		SELECT event_id, user_id, status, responded_at
		FROM event_attendees WHERE event_id = ?
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*core.Attendee
	for rows.Next() {
		a := &core.Attendee{}
		var responded sql.NullTime
		if err := rows.Scan(&a.EventID, &a.UserID, &a.Status, &responded); err != nil {
			return nil, err
		}
		if responded.Valid {
			t := responded.Time
			a.RespondedAt = &t
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
