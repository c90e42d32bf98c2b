package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/logging"
)

// TaskFields is the structured result of parsing a free-text task
// description.
type TaskFields struct {
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	EstimatedMinutes int           `json:"estimated_minutes"`
	Importance       int           `json:"importance"`
	Category         core.Category `json:"category"`
	DueDate          string        `json:"due_date,omitempty"` // YYYY-MM-DD, empty if none
}

// Service routes requests to the Claude API when configured, falling
// back to the deterministic generators otherwise. Callers receive the
// result plus its generation source; AI failures never surface as
// errors.
type Service struct {
	client *Client
	log    *logging.Logger
	now    func() time.Time
}

// NewService creates the assist service. The client decides at
// construction whether the AI path is available.
func NewService(client *Client) *Service {
	return &Service{
		client: client,
		log:    logging.WithField("component", "assist"),
		now:    time.Now,
	}
}

// GenerateRecipe produces a recipe for a dish. The fallback recipe is
// a placeholder with non-empty ingredient and instruction lines.
func (s *Service) GenerateRecipe(ctx context.Context, dish string, servings int) (*core.Recipe, core.GenerationSource) {
	if servings <= 0 {
		servings = 4
	}
	if !s.client.IsConfigured() {
		return fallbackRecipe(dish), core.SourceFallback
	}

	prompt := fmt.Sprintf(`Generate a recipe for %s (serves %d).

Return ONLY a JSON object with this exact structure (no markdown, no extra text):
{
  "ingredients": ["ingredient 1 with quantity", "ingredient 2 with quantity"],
  "instructions": ["step 1", "step 2"],
  "prep_minutes": <integer>,
  "cook_minutes": <integer>
}

Make it practical and realistic. Use common ingredients.`, dish, servings)

	text, err := s.client.Complete(ctx, "", prompt, 1500)
	if err != nil {
		s.log.Warn("recipe generation failed, using fallback: %v", err)
		return fallbackRecipe(dish), core.SourceFallback
	}

	recipe := &core.Recipe{}
	if err := decodeJSONReply(text, recipe); err != nil {
		s.log.Warn("recipe response unparseable, using fallback: %v", err)
		return fallbackRecipe(dish), core.SourceFallback
	}
	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		s.log.Warn("recipe response incomplete, using fallback")
		return fallbackRecipe(dish), core.SourceFallback
	}

	return recipe, core.SourceAI
}

// ParseTask extracts structured task fields from free text such as
// "buy milk tomorrow, 15 min, important".
func (s *Service) ParseTask(ctx context.Context, text string) (*TaskFields, core.GenerationSource) {
	if !s.client.IsConfigured() {
		return fallbackTaskFields(text), core.SourceFallback
	}

	today := s.now().Format("2006-01-02")
	prompt := fmt.Sprintf(`Parse this task description into structured data: %q

Today's date is %s.

Return ONLY a JSON object:
{
  "title": "<concise task title>",
  "description": "<optional details or empty string>",
  "estimated_minutes": <integer, default 30>,
  "importance": <1-5 integer, default 3>,
  "category": "<one of: chore, personal, work, shopping, health, general>",
  "due_date": "<YYYY-MM-DD or empty string>"
}

Extract due dates from phrases like "tomorrow", "next week", "by Friday".`, text, today)

	reply, err := s.client.Complete(ctx, "", prompt, 300)
	if err != nil {
		s.log.Warn("task parsing failed, using fallback: %v", err)
		return fallbackTaskFields(text), core.SourceFallback
	}

	fields := &TaskFields{}
	if err := decodeJSONReply(reply, fields); err != nil {
		s.log.Warn("task parse response unparseable, using fallback: %v", err)
		return fallbackTaskFields(text), core.SourceFallback
	}

	sanitizeTaskFields(fields, text)
	return fields, core.SourceAI
}

// OptimizeSchedule orders pending todos into a day plan. The fallback
// is a greedy importance-sorted packing from 09:00.
func (s *Service) OptimizeSchedule(ctx context.Context, todos []*core.TodoItem, availableHours int) ([]core.PlanSlot, core.GenerationSource) {
	if availableHours <= 0 {
		availableHours = 8
	}
	if !s.client.IsConfigured() || len(todos) == 0 {
		return fallbackSchedule(todos, availableHours), core.SourceFallback
	}

	// Cap the prompt size; surplus tasks just wait for another day
	limited := todos
	if len(limited) > 15 {
		limited = limited[:15]
	}

	var lines []string
	for _, t := range limited {
		lines = append(lines, fmt.Sprintf("- ID %d: %s (%dmin, importance: %d/5, category: %s)",
			t.ID, t.Title, t.EstimatedMinutes, t.Importance, t.Category))
	}

	prompt := fmt.Sprintf(`You have %d hours available (09:00 to %d:00).

Schedule these tasks optimally:
%s

Consider:
- Batch similar categories together
- High-importance tasks during peak energy hours
- Include 10%% buffer time between tasks
- Don't overpack the schedule

Return ONLY a JSON array:
[
  {"todo_id": 1, "start_time": "09:00", "reasoning": "brief reason"}
]

Only schedule tasks that fit in the available time.`, availableHours, 9+availableHours, strings.Join(lines, "\n"))

	reply, err := s.client.Complete(ctx, "", prompt, 1000)
	if err != nil {
		s.log.Warn("schedule optimization failed, using fallback: %v", err)
		return fallbackSchedule(todos, availableHours), core.SourceFallback
	}

	var raw []struct {
		TodoID    int64  `json:"todo_id"`
		StartTime string `json:"start_time"`
		Reasoning string `json:"reasoning"`
	}
	if err := decodeJSONReply(reply, &raw); err != nil {
		s.log.Warn("schedule response unparseable, using fallback: %v", err)
		return fallbackSchedule(todos, availableHours), core.SourceFallback
	}

	byID := make(map[core.TodoID]*core.TodoItem, len(todos))
	for _, t := range todos {
		byID[t.ID] = t
	}

	var slots []core.PlanSlot
	for _, item := range raw {
		todo, ok := byID[core.TodoID(item.TodoID)]
		if !ok {
			continue // Hallucinated ID; drop it
		}
		if _, err := time.Parse("15:04", item.StartTime); err != nil {
			continue
		}
		slots = append(slots, core.PlanSlot{
			TodoID:          todo.ID,
			StartTime:       item.StartTime,
			DurationMinutes: todo.EstimatedMinutes,
			Rationale:       item.Reasoning,
		})
	}

	if len(slots) == 0 {
		s.log.Warn("schedule response empty, using fallback")
		return fallbackSchedule(todos, availableHours), core.SourceFallback
	}

	return slots, core.SourceAI
}

// decodeJSONReply unmarshals a model reply, tolerating a markdown code
// fence around the JSON.
func decodeJSONReply(reply string, v interface{}) error {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return json.Unmarshal([]byte(text), v)
}

// sanitizeTaskFields clamps model output into valid ranges so the
// caller can persist it without further checks.
func sanitizeTaskFields(fields *TaskFields, original string) {
	if fields.Title == "" {
		fields.Title = fallbackTaskFields(original).Title
	}
	if fields.EstimatedMinutes <= 0 {
		fields.EstimatedMinutes = fallbackEstimatedMinutes
	}
	if fields.Importance < 1 || fields.Importance > 5 {
		fields.Importance = fallbackImportance
	}
	if !core.ValidCategory(fields.Category) {
		fields.Category = core.CategoryGeneral
	}
	if fields.DueDate != "" {
		if _, err := time.Parse("2006-01-02", fields.DueDate); err != nil {
			fields.DueDate = ""
		}
	}
}
