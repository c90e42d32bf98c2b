package reminder

import (
	"fmt"
	"strings"

	"github.com/hearthbot/hearth/internal/core"
)

// render builds the kind-specific notification for a reminder. Returns
// an error if the referenced row no longer exists.
func (s *Service) render(r *core.Reminder) (Notification, error) {
	switch r.Kind {
	case core.RemindEvent24h, core.RemindEvent1h:
		event, err := s.events.GetByID(core.EventID(r.ReferenceID))
		if err != nil {
			return Notification{}, err
		}
		return s.eventNotification(event, r), nil

	case core.RemindCookingNextDay:
		meal, err := s.cooking.GetByID(core.CookingID(r.ReferenceID))
		if err != nil {
			return Notification{}, err
		}
		return cookingNotification(meal, r), nil

	default:
		return Notification{
			Title: "🔔 Reminder",
			Body:  r.Message,
		}, nil
	}
}

func (s *Service) eventNotification(event *core.Event, r *core.Reminder) Notification {
	when := event.StartsAt.In(s.loc).Format("Mon, Jan 2 at 15:04")

	var body strings.Builder
	fmt.Fprintf(&body, "**%s**\n📅 %s", event.Title, when)
	if event.Description != "" {
		fmt.Fprintf(&body, "\n%s", event.Description)
	}

	return Notification{
		Title:  "🔔 Event Reminder",
		Body:   body.String(),
		Footer: r.Message,
	}
}

func cookingNotification(meal *core.CookingAssignment, r *core.Reminder) Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "You're scheduled to cook tomorrow!\n**%s** — %s on %s",
		meal.DishName, mealLabel(meal.Meal), meal.Date)
	if meal.Recipe != nil && meal.Recipe.PrepMinutes+meal.Recipe.CookMinutes > 0 {
		fmt.Fprintf(&body, "\n⏱️ ~%d minutes total", meal.Recipe.PrepMinutes+meal.Recipe.CookMinutes)
	}

	return Notification{
		Title:  "👨‍🍳 Cooking Reminder",
		Body:   body.String(),
		Footer: r.Message,
	}
}

func mealLabel(m core.MealType) string {
	if m == "" {
		return "Meal"
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}
