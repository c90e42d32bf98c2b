package testutil

import (
	"testing"
	"time"

	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/storage"
)

// MakeUser inserts a household member and returns it.
func MakeUser(t *testing.T, db *storage.DB, discordID, username string) *core.User {
	t.Helper()

	user, err := storage.NewUserStore(db).GetOrCreate(discordID, username)
	if err != nil {
		t.Fatalf("create test user %s: %v", username, err)
	}
	return user
}

// MakeEvent inserts an event created by the given user, with both
// reminder offsets enabled.
func MakeEvent(t *testing.T, db *storage.DB, createdBy core.UserID, title string, startsAt time.Time) *core.Event {
	t.Helper()

	event := &core.Event{
		Title:     title,
		StartsAt:  startsAt,
		CreatedBy: createdBy,
		Remind24h: true,
		Remind1h:  true,
	}
	if err := storage.NewEventStore(db).Create(event); err != nil {
		t.Fatalf("create test event %s: %v", title, err)
	}
	return event
}

// MakeCooking inserts a cooking assignment with a small recipe.
func MakeCooking(t *testing.T, db *storage.DB, cook core.UserID, date, dish string) *core.CookingAssignment {
	t.Helper()

	a := &core.CookingAssignment{
		Date:     date,
		Meal:     core.MealDinner,
		CookID:   cook,
		DishName: dish,
		Recipe: &core.Recipe{
			Ingredients:  []string{"main ingredient", "seasoning"},
			Instructions: []string{"prepare", "cook", "serve"},
			PrepMinutes:  15,
			CookMinutes:  30,
		},
		Source: core.SourceFallback,
	}
	if err := storage.NewCookingStore(db).Create(a); err != nil {
		t.Fatalf("create test cooking assignment %s: %v", dish, err)
	}
	return a
}

// MakeTodo inserts a pending todo.
func MakeTodo(t *testing.T, db *storage.DB, owner core.UserID, title string, minutes, importance int) *core.TodoItem {
	t.Helper()

	item := &core.TodoItem{
		OwnerID:          owner,
		Title:            title,
		EstimatedMinutes: minutes,
		Importance:       importance,
		Category:         core.CategoryGeneral,
	}
	if err := storage.NewTodoStore(db).Create(item); err != nil {
		t.Fatalf("create test todo %s: %v", title, err)
	}
	return item
}
