package assist

import (
	"fmt"
	"sort"

	"github.com/hearthbot/hearth/internal/core"
)

// Fallback generators: deterministic, pure substitutes for the AI path,
// producing the same output shape. Used whenever no API key is
// configured or a Claude call fails.

const (
	fallbackEstimatedMinutes = 30
	fallbackImportance       = 3

	schedulePackStart = 9 * 60 // 09:00, minutes from midnight
	maxScheduledTasks = 10
)

// fallbackRecipe returns a placeholder recipe for the dish
func fallbackRecipe(dish string) *core.Recipe {
	return &core.Recipe{
		Ingredients: []string{
			fmt.Sprintf("Main ingredients for %s", dish),
			"Seasonings (salt, pepper, etc.)",
			"Cooking oil/butter as needed",
		},
		Instructions: []string{
			"Prepare all ingredients",
			fmt.Sprintf("Cook %s according to your preferred method", dish),
			"Season to taste and serve",
		},
		PrepMinutes: 15,
		CookMinutes: 30,
	}
}

// fallbackTaskFields treats the whole input as the title and fills
// defaults for everything else
func fallbackTaskFields(text string) *TaskFields {
	title := text
	if runes := []rune(title); len(runes) > 100 {
		title = string(runes[:100])
	}
	return &TaskFields{
		Title:            title,
		EstimatedMinutes: fallbackEstimatedMinutes,
		Importance:       fallbackImportance,
		Category:         core.CategoryGeneral,
	}
}

// fallbackSchedule greedily packs tasks by importance from 09:00,
// inserting a buffer of max(5, 10% of duration) minutes after each
// task. Tasks that do not fit in the window are dropped; at most ten
// tasks are scheduled.
func fallbackSchedule(todos []*core.TodoItem, availableHours int) []core.PlanSlot {
	sorted := make([]*core.TodoItem, len(todos))
	copy(sorted, todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})

	var slots []core.PlanSlot
	cursor := schedulePackStart
	end := schedulePackStart + availableHours*60

	for _, todo := range sorted {
		duration := todo.EstimatedMinutes
		if duration <= 0 {
			duration = fallbackEstimatedMinutes
		}
		buffer := duration / 10
		if buffer < 5 {
			buffer = 5
		}

		if cursor+duration+buffer > end {
			continue
		}

		slots = append(slots, core.PlanSlot{
			TodoID:          todo.ID,
			StartTime:       fmt.Sprintf("%02d:%02d", cursor/60, cursor%60),
			DurationMinutes: duration,
			Rationale:       fmt.Sprintf("Priority task (importance: %d)", todo.Importance),
		})
		cursor += duration + buffer

		if len(slots) >= maxScheduledTasks {
			break
		}
	}

	return slots
}
