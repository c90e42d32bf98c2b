// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"time"

	"github.com/hearthbot/hearth/internal/core"
)

// TodoStore handles todo persistence
type TodoStore struct {
	db *DB
}

// NewTodoStore creates a new todo store
func NewTodoStore(db *DB) *TodoStore {
	return &TodoStore{db: db}
}

// Create inserts a new todo
func (s *TodoStore) Create(item *core.TodoItem) error {
	item.CreatedAt = time.Now().UTC()
	if item.Status == "" {
		item.Status = core.TodoPending
	}

	var due interface{}
	if item.DueDate != "" {
		due = item.DueDate
	}

	res, err := s.db.conn.Exec(`
		INSERT INTO todos (user_id, title, description, estimated_minutes, importance, category, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.OwnerID, item.Title, item.Description, item.EstimatedMinutes,
		item.Importance, item.Category, item.Status, due, item.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = core.TodoID(id)
	return nil
}

const todoColumns = `todo_id, user_id, title, description, estimated_minutes,
       importance, category, status, due_date, created_at, completed_at`

// GetByID returns a todo by ID
func (s *TodoStore) GetByID(id core.TodoID) (*core.TodoItem, error) {
	row := s.db.conn.QueryRow(`SELECT `+todoColumns+` FROM todos WHERE todo_id = ?`, id)
	item, err := scanTodo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, core.ErrTodoNotFound
	}
	return item, err
}

// ListByOwner returns an owner's todos, optionally filtered by status.
// Pass an empty status to list everything. Ordered by importance, then
// due date, then recency.
func (s *TodoStore) ListByOwner(owner core.UserID, status core.TodoStatus, limit int) ([]*core.TodoItem, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE user_id = ?`
	args := []interface{}{owner}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += `
		ORDER BY importance DESC, due_date IS NULL, due_date, created_at DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*core.TodoItem
	for rows.Next() {
		item, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Complete marks a todo completed and stamps completed_at
func (s *TodoStore) Complete(id core.TodoID) error {
	res, err := s.db.conn.Exec(`
		UPDATE todos SET status = ?, completed_at = ? WHERE todo_id = ?
	`, core.TodoCompleted, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrTodoNotFound
	}
	return nil
}

// Delete removes a todo. Plan entries referencing it cascade away.
func (s *TodoStore) Delete(id core.TodoID) error {
	res, err := s.db.conn.Exec(`DELETE FROM todos WHERE todo_id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrTodoNotFound
	}
	return nil
}

func scanTodo(scan func(...interface{}) error) (*core.TodoItem, error) {
	item := &core.TodoItem{}
	var due sql.NullString
	var completed sql.NullTime

	err := scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.EstimatedMinutes,
		&item.Importance, &item.Category, &item.Status, &due, &item.CreatedAt, &completed,
	)
	if err != nil {
		return nil, err
	}

	item.DueDate = due.String
	if completed.Valid {
		t := completed.Time
		item.CompletedAt = &t
	}

	return item, nil
}
