// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hearthbot/hearth/internal/core"
)

// CookingStore handles cooking schedule persistence
type CookingStore struct {
	db *DB
}

// NewCookingStore creates a new cooking store
func NewCookingStore(db *DB) *CookingStore {
	return &CookingStore{db: db}
}

// Create inserts a cooking assignment. The recipe payload, if present,
// is stored as JSON columns alongside the row.
func (s *CookingStore) Create(a *core.CookingAssignment) error {
	a.CreatedAt = time.Now().UTC()

	ingredients := []byte("[]")
	instructions := []byte("[]")
	prep, cook := 0, 0
	if a.Recipe != nil {
		ingredients, _ = json.Marshal(a.Recipe.Ingredients)
		instructions, _ = json.Marshal(a.Recipe.Instructions)
		prep = a.Recipe.PrepMinutes
		cook = a.Recipe.CookMinutes
	}

	res, err := s.db.conn.Exec(`
		INSERT INTO cooking_schedule (
		    cook_date, meal_type, cook_id, dish_name,
		    ingredients, instructions, prep_minutes, cook_minutes,
		    recipe_source, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Date, a.Meal, a.CookID, a.DishName,
		string(ingredients), string(instructions), prep, cook,
		a.Source, a.Notes, a.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = core.CookingID(id)
	return nil
}

const cookingColumns = `schedule_id, cook_date, meal_type, cook_id, dish_name,
       ingredients, instructions, prep_minutes, cook_minutes,
       recipe_source, notes, created_at`

// GetByID returns a cooking assignment by ID
func (s *CookingStore) GetByID(id core.CookingID) (*core.CookingAssignment, error) {
	row := s.db.conn.QueryRow(`SELECT `+cookingColumns+` FROM cooking_schedule WHERE schedule_id = ?`, id)
	a, err := scanCooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, core.ErrCookingNotFound
	}
	return a, err
}

// ListByDate returns assignments for one date, ordered by meal type
func (s *CookingStore) ListByDate(date string) ([]*core.CookingAssignment, error) {
	return s.list(`
		SELECT `+cookingColumns+`
		FROM cooking_schedule WHERE cook_date = ?
		ORDER BY meal_type
	`, date)
}

// ListUpcoming returns assignments dated from startDate on
func (s *CookingStore) ListUpcoming(startDate string, limit int) ([]*core.CookingAssignment, error) {
	return s.list(`
		SELECT `+cookingColumns+`
		FROM cooking_schedule WHERE cook_date >= ?
		ORDER BY cook_date, meal_type
		LIMIT ?
	`, startDate, limit)
}

func (s *CookingStore) list(query string, args ...interface{}) ([]*core.CookingAssignment, error) {
	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.CookingAssignment
	for rows.Next() {
		a, err := scanCooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanCooking(scan func(...interface{}) error) (*core.CookingAssignment, error) {
	a := &core.CookingAssignment{}
	var ingredients, instructions string
	var prep, cook int

	err := scan(
		&a.ID, &a.Date, &a.Meal, &a.CookID, &a.DishName,
		&ingredients, &instructions, &prep, &cook,
		&a.Source, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	recipe := &core.Recipe{PrepMinutes: prep, CookMinutes: cook}
	json.Unmarshal([]byte(ingredients), &recipe.Ingredients)
	json.Unmarshal([]byte(instructions), &recipe.Instructions)
	if len(recipe.Ingredients) > 0 || len(recipe.Instructions) > 0 {
		a.Recipe = recipe
	}

	return a, nil
}
