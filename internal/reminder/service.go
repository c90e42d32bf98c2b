// Package reminder implements the reminder lifecycle: creation on
// event/cooking writes, the periodic due-reminder tick, and the daily
// pre-generation of next-day cooking reminders.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthbot/hearth/internal/config"
	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/logging"
	"github.com/hearthbot/hearth/internal/storage"
)

// Notification is one rendered reminder ready for delivery.
type Notification struct {
	Title  string
	Body   string
	Footer string
}

// Notifier delivers a notification directly to a user. Implemented by
// the Discord layer as a DM; delivery is best-effort.
type Notifier interface {
	SendDM(ctx context.Context, discordID string, n Notification) error
}

// Config for the reminder service
type Config struct {
	// PastDue controls reminders whose computed due time already
	// passed at creation: create-and-fire-next-tick, or skip.
	PastDue config.PastDuePolicy

	// CookingLeadHour is the local hour next-day cooking reminders
	// come due (default 8, i.e. 08:00 the day of the assignment).
	CookingLeadHour int

	// Timezone for day boundaries and the cooking lead time.
	Timezone string
}

// Service owns reminder rows end to end. All time arithmetic goes
// through the injected clock so tests can pin it.
type Service struct {
	users     *storage.UserStore
	events    *storage.EventStore
	cooking   *storage.CookingStore
	reminders *storage.ReminderStore
	notifier  Notifier

	pastDue  config.PastDuePolicy
	leadHour int
	loc      *time.Location

	log *logging.Logger
	now func() time.Time
}

// NewService creates the reminder service
func NewService(db *storage.DB, notifier Notifier, cfg Config) *Service {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	if cfg.CookingLeadHour <= 0 || cfg.CookingLeadHour > 23 {
		cfg.CookingLeadHour = 8
	}
	if cfg.PastDue == "" {
		cfg.PastDue = config.PastDueFire
	}

	return &Service{
		users:     storage.NewUserStore(db),
		events:    storage.NewEventStore(db),
		cooking:   storage.NewCookingStore(db),
		reminders: storage.NewReminderStore(db),
		notifier:  notifier,
		pastDue:   cfg.PastDue,
		leadHour:  cfg.CookingLeadHour,
		loc:       loc,
		log:       logging.WithField("component", "reminder"),
		now:       time.Now,
	}
}

// ScheduleEventReminders creates the 24h and 1h reminder rows for every
// accepted attendee of an event. Under the default past-due policy a
// reminder whose due time already passed is still created and fires on
// the next tick; under the skip policy it is not created at all.
func (s *Service) ScheduleEventReminders(ctx context.Context, event *core.Event) error {
	attendees, err := s.events.Attendees(event.ID)
	if err != nil {
		return fmt.Errorf("load attendees: %w", err)
	}

	offsets := []struct {
		kind    core.ReminderKind
		lead    time.Duration
		enabled bool
		message string
	}{
		{core.RemindEvent24h, 24 * time.Hour, event.Remind24h, "Event starts in 24 hours"},
		{core.RemindEvent1h, time.Hour, event.Remind1h, "Event starts in 1 hour"},
	}

	now := s.now()
	created := 0
	for _, attendee := range attendees {
		if attendee.Status != core.AttendeeAccepted {
			continue
		}
		for _, o := range offsets {
			if !o.enabled {
				continue
			}
			due := event.StartsAt.Add(-o.lead)
			if due.Before(now) && s.pastDue == config.PastDueSkip {
				continue
			}
			inserted, err := s.reminders.CreateIfAbsent(&core.Reminder{
				Kind:        o.kind,
				ReferenceID: int64(event.ID),
				UserID:      attendee.UserID,
				DueAt:       due,
				Message:     o.message,
			})
			if err != nil {
				return fmt.Errorf("create %s reminder: %w", o.kind, err)
			}
			if inserted {
				created++
			}
		}
	}

	s.log.Info("scheduled %d reminders for event %d", created, event.ID)
	return nil
}

// Tick scans for due, unsent reminders and dispatches each as a direct
// message. A row is marked sent only after delivery succeeds, so a
// failed delivery is retried on a later tick (at-least-once). Per-row
// failures never abort the batch.
func (s *Service) Tick(ctx context.Context) error {
	due, err := s.reminders.Due(s.now())
	if err != nil {
		return fmt.Errorf("query due reminders: %w", err)
	}

	sent := 0
	for _, r := range due {
		if err := s.dispatch(ctx, r); err != nil {
			s.log.Warn("reminder %s not delivered: %v", r.ID, err)
			continue
		}
		if err := s.reminders.MarkSent(r.ID); err != nil {
			s.log.Error("mark reminder %s sent: %v", r.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Info("delivered %d reminders", sent)
	}
	return nil
}

// dispatch resolves the target user, renders the kind-specific message
// and attempts delivery.
func (s *Service) dispatch(ctx context.Context, r *core.Reminder) error {
	user, err := s.users.GetByID(r.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", r.UserID, err)
	}

	n, err := s.render(r)
	if err != nil {
		// The referenced row is gone; the reminder can never render.
		// Retiring it keeps the poison row from blocking every tick.
		s.log.Warn("reminder %s references missing %s %d, retiring", r.ID, r.Kind, r.ReferenceID)
		return s.reminders.MarkSent(r.ID)
	}

	if err := s.notifier.SendDM(ctx, user.DiscordID, n); err != nil {
		return fmt.Errorf("deliver to %s: %w", user.DiscordID, err)
	}
	return nil
}

// GenerateDailyCookingReminders creates a cooking-next-day reminder for
// every assignment dated tomorrow, due at the configured lead hour.
// Safe to run more than once per day: the (kind, reference, user)
// uniqueness makes re-runs no-ops.
func (s *Service) GenerateDailyCookingReminders(ctx context.Context) error {
	tomorrow := s.now().In(s.loc).AddDate(0, 0, 1)
	date := tomorrow.Format("2006-01-02")

	meals, err := s.cooking.ListByDate(date)
	if err != nil {
		return fmt.Errorf("load cooking schedule for %s: %w", date, err)
	}

	due := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(),
		s.leadHour, 0, 0, 0, s.loc)

	created := 0
	for _, meal := range meals {
		inserted, err := s.reminders.CreateIfAbsent(&core.Reminder{
			Kind:        core.RemindCookingNextDay,
			ReferenceID: int64(meal.ID),
			UserID:      meal.CookID,
			DueAt:       due,
			Message:     fmt.Sprintf("Don't forget to prepare ingredients for %s!", meal.DishName),
		})
		if err != nil {
			s.log.Error("create cooking reminder for assignment %d: %v", meal.ID, err)
			continue
		}
		if inserted {
			created++
		}
	}

	if created > 0 {
		s.log.Info("created %d cooking reminders for %s", created, date)
	}
	return nil
}
