// Package core defines the fundamental types and errors for Hearth.
package core

import (
	"time"
)

// -----------------------------------------------------------------------------
// USER - A household member, created implicitly on first interaction
// -----------------------------------------------------------------------------

// UserID is the local row identifier for a user.
type UserID int64

// User represents a household member. Users are created the first time
// they interact with the bot and are never deleted.
type User struct {
	ID        UserID    `json:"id"`
	DiscordID string    `json:"discord_id"` // Platform-assigned snowflake
	Username  string    `json:"username"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// -----------------------------------------------------------------------------
// EVENT - A scheduled household event with attendees
// -----------------------------------------------------------------------------

// EventID identifies an event row.
type EventID int64

// Event is a household event. Start time is validated to be in the
// future at creation; the check is not enforced retroactively.
type Event struct {
	ID          EventID   `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedBy   UserID    `json:"created_by"`
	Remind24h   bool      `json:"remind_24h"`
	Remind1h    bool      `json:"remind_1h"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttendeeStatus tracks an attendee's RSVP state.
type AttendeeStatus string

const (
	AttendeePending  AttendeeStatus = "pending"
	AttendeeAccepted AttendeeStatus = "accepted"
	AttendeeDeclined AttendeeStatus = "declined"
)

// Attendee links a user to an event.
type Attendee struct {
	EventID     EventID        `json:"event_id"`
	UserID      UserID         `json:"user_id"`
	Status      AttendeeStatus `json:"status"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
}

// -----------------------------------------------------------------------------
// COOKING - Who cooks what, when, with a recipe attached at creation
// -----------------------------------------------------------------------------

// CookingID identifies a cooking schedule row.
type CookingID int64

// MealType is the meal slot for a cooking assignment.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealOther     MealType = "other"
)

// ValidMealType reports whether m is a known meal type.
func ValidMealType(m MealType) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealOther:
		return true
	}
	return false
}

// GenerationSource records whether generated content came from the AI
// gateway or a deterministic fallback.
type GenerationSource string

const (
	SourceAI       GenerationSource = "ai"
	SourceFallback GenerationSource = "fallback"
)

// Recipe is the generated payload attached to a cooking assignment.
type Recipe struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepMinutes  int      `json:"prep_minutes"`
	CookMinutes  int      `json:"cook_minutes"`
}

// CookingAssignment is one entry on the cooking schedule. The recipe is
// filled synchronously at creation, from the AI gateway or its fallback.
type CookingAssignment struct {
	ID        CookingID        `json:"id"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Meal      MealType         `json:"meal"`
	CookID    UserID           `json:"cook_id"`
	DishName  string           `json:"dish_name"`
	Recipe    *Recipe          `json:"recipe,omitempty"`
	Source    GenerationSource `json:"source"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// -----------------------------------------------------------------------------
// TODO - A personal task
// -----------------------------------------------------------------------------

// TodoID identifies a todo row.
type TodoID int64

// Category buckets a todo for scheduling and display.
type Category string

const (
	CategoryChore    Category = "chore"
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryGeneral  Category = "general"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryChore, CategoryPersonal, CategoryWork,
		CategoryShopping, CategoryHealth, CategoryGeneral:
		return true
	}
	return false
}

// TodoStatus is the lifecycle state of a todo.
type TodoStatus string

const (
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
)

// TodoItem is a personal task. Completed items are retained until
// explicitly deleted.
type TodoItem struct {
	ID               TodoID     `json:"id"`
	OwnerID          UserID     `json:"owner_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Importance       int        `json:"importance"` // 1-5
	Category         Category   `json:"category"`
	Status           TodoStatus `json:"status"`
	DueDate          string     `json:"due_date,omitempty"` // YYYY-MM-DD, empty if none
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// -----------------------------------------------------------------------------
// PLAN - A day's ordered schedule of todos
// -----------------------------------------------------------------------------

// PlanSlot is one scheduled block in a daily plan.
type PlanSlot struct {
	TodoID          TodoID `json:"todo_id"`
	StartTime       string `json:"start_time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	Rationale       string `json:"rationale,omitempty"`
}

// PlanEntry is a persisted plan slot for one (owner, date). There is at
// most one plan per owner per date; regeneration replaces it wholesale.
type PlanEntry struct {
	ID              int64            `json:"id"`
	OwnerID         UserID           `json:"owner_id"`
	TodoID          TodoID           `json:"todo_id"`
	Date            string           `json:"date"` // YYYY-MM-DD
	StartTime       string           `json:"start_time"`
	DurationMinutes int              `json:"duration_minutes"`
	Rationale       string           `json:"rationale,omitempty"`
	Source          GenerationSource `json:"source"`
	CreatedAt       time.Time        `json:"created_at"`
}

// -----------------------------------------------------------------------------
// REMINDER - A scheduled one-shot notification record
// -----------------------------------------------------------------------------

// ReminderKind is what a reminder is about.
type ReminderKind string

const (
	RemindEvent24h       ReminderKind = "event-24h"
	RemindEvent1h        ReminderKind = "event-1h"
	RemindCookingNextDay ReminderKind = "cooking-next-day"
)

// Reminder is a pending or delivered notification. Sent is monotonic:
// once true it never reverts. DueAt is immutable after creation.
type Reminder struct {
	ID          string       `json:"id"` // UUID
	Kind        ReminderKind `json:"kind"`
	ReferenceID int64        `json:"reference_id"` // event or cooking assignment ID
	UserID      UserID       `json:"user_id"`
	DueAt       time.Time    `json:"due_at"`
	Message     string       `json:"message,omitempty"`
	Sent        bool         `json:"sent"`
	CreatedAt   time.Time    `json:"created_at"`
}
