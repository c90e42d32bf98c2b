// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"time"

	"github.com/hearthbot/hearth/internal/core"
)

// PlanStore handles daily plan persistence
type PlanStore struct {
	db *DB
}

// NewPlanStore creates a new plan store
func NewPlanStore(db *DB) *PlanStore {
	return &PlanStore{db: db}
}

// Replace atomically swaps the plan for (owner, date) with the given
// slots. Regeneration is idempotent: at most one plan exists per owner
// per date.
func (s *PlanStore) Replace(owner core.UserID, date string, slots []core.PlanSlot, source core.GenerationSource) error {
	now := time.Now().UTC()

	return s.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM planner WHERE user_id = ? AND plan_date = ?
		`, owner, date); err != nil {
			return err
		}

		for _, slot := range slots {
			if _, err := tx.Exec(`
				INSERT INTO planner (user_id, todo_id, plan_date, start_time, duration_minutes, rationale, plan_source, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, owner, slot.TodoID, date, slot.StartTime, slot.DurationMinutes,
				slot.Rationale, source, now); err != nil {
				return err
			}
		}

		return nil
	})
}

// Get returns the plan entries for (owner, date) ordered by start time
func (s *PlanStore) Get(owner core.UserID, date string) ([]*core.PlanEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT plan_id, user_id, todo_id, plan_date, start_time, duration_minutes, rationale, plan_source, created_at
		FROM planner
		WHERE user_id = ? AND plan_date = ?
		ORDER BY start_time
	`, owner, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*core.PlanEntry
	for rows.Next() {
		e := &core.PlanEntry{}
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.TodoID, &e.Date, &e.StartTime,
			&e.DurationMinutes, &e.Rationale, &e.Source, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes the plan for (owner, date)
func (s *PlanStore) Clear(owner core.UserID, date string) error {
	_, err := s.db.conn.Exec(`
		DELETE FROM planner WHERE user_id = ? AND plan_date = ?
	`, owner, date)
	return err
}
