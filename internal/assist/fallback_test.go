package assist

import (
	"strings"
	"testing"

	"github.com/hearthbot/hearth/internal/core"
)

func TestFallbackRecipe(t *testing.T) {
	recipe := fallbackRecipe("Lasagna")

	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		t.Fatal("fallback recipe must have ingredients and instructions")
	}
	if recipe.PrepMinutes != 15 || recipe.CookMinutes != 30 {
		t.Errorf("got prep=%d cook=%d, want 15/30", recipe.PrepMinutes, recipe.CookMinutes)
	}
	if !strings.Contains(recipe.Ingredients[0], "Lasagna") {
		t.Errorf("dish name missing from ingredients: %q", recipe.Ingredients[0])
	}
}

func TestFallbackTaskFields(t *testing.T) {
	t.Run("short text is the title verbatim", func(t *testing.T) {
		fields := fallbackTaskFields("buy milk")
		if fields.Title != "buy milk" {
			t.Errorf("got title %q", fields.Title)
		}
		if fields.EstimatedMinutes != 30 || fields.Importance != 3 {
			t.Errorf("got minutes=%d importance=%d, want 30/3", fields.EstimatedMinutes, fields.Importance)
		}
		if fields.Category != core.CategoryGeneral {
			t.Errorf("got category %q, want general", fields.Category)
		}
	})

	t.Run("long text is truncated to 100 runes", func(t *testing.T) {
		long := strings.Repeat("ü", 150)
		fields := fallbackTaskFields(long)
		if got := len([]rune(fields.Title)); got != 100 {
			t.Errorf("got %d runes, want 100", got)
		}
	})
}

func TestFallbackSchedule(t *testing.T) {
	mkTodo := func(id core.TodoID, minutes, importance int) *core.TodoItem {
		return &core.TodoItem{ID: id, Title: "t", EstimatedMinutes: minutes, Importance: importance}
	}

	t.Run("packs by importance from 09:00", func(t *testing.T) {
		slots := fallbackSchedule([]*core.TodoItem{
			mkTodo(1, 30, 2),
			mkTodo(2, 60, 5),
			mkTodo(3, 30, 4),
		}, 8)

		if len(slots) != 3 {
			t.Fatalf("got %d slots, want 3", len(slots))
		}
		if slots[0].TodoID != 2 || slots[0].StartTime != "09:00" {
			t.Errorf("first slot = %+v, want todo 2 at 09:00", slots[0])
		}
		// 60min task then max(5, 6)=6 buffer
		if slots[1].TodoID != 3 || slots[1].StartTime != "10:06" {
			t.Errorf("second slot = %+v, want todo 3 at 10:06", slots[1])
		}
	})

	t.Run("buffer floor is five minutes", func(t *testing.T) {
		slots := fallbackSchedule([]*core.TodoItem{
			mkTodo(1, 20, 3),
			mkTodo(2, 20, 3),
		}, 8)

		if len(slots) != 2 {
			t.Fatalf("got %d slots, want 2", len(slots))
		}
		if slots[1].StartTime != "09:25" {
			t.Errorf("second start = %s, want 09:25", slots[1].StartTime)
		}
	})

	t.Run("drops tasks that do not fit", func(t *testing.T) {
		slots := fallbackSchedule([]*core.TodoItem{
			mkTodo(1, 50, 5),
			mkTodo(2, 300, 4), // Cannot fit after the first in a 1h window
		}, 1)

		if len(slots) != 1 || slots[0].TodoID != 1 {
			t.Errorf("got %+v, want only todo 1", slots)
		}
	})

	t.Run("caps at ten tasks", func(t *testing.T) {
		var todos []*core.TodoItem
		for i := 1; i <= 15; i++ {
			todos = append(todos, mkTodo(core.TodoID(i), 10, 3))
		}
		slots := fallbackSchedule(todos, 8)
		if len(slots) != 10 {
			t.Errorf("got %d slots, want 10", len(slots))
		}
	})

	t.Run("zero-minute estimate defaults to 30", func(t *testing.T) {
		slots := fallbackSchedule([]*core.TodoItem{mkTodo(1, 0, 3)}, 8)
		if len(slots) != 1 || slots[0].DurationMinutes != 30 {
			t.Errorf("got %+v, want one 30-minute slot", slots)
		}
	})

	t.Run("empty input yields empty plan", func(t *testing.T) {
		if slots := fallbackSchedule(nil, 8); len(slots) != 0 {
			t.Errorf("got %d slots, want 0", len(slots))
		}
	})
}
