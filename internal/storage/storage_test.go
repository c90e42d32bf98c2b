package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/storage"
	"github.com/hearthbot/hearth/internal/testutil"
)

func TestUserStore(t *testing.T) {
	db := testutil.TestDB(t)
	users := storage.NewUserStore(db)

	t.Run("GetOrCreate creates on first interaction", func(t *testing.T) {
		user, err := users.GetOrCreate("111222333", "alice")
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, user.ID > 0, "expected assigned ID")
		testutil.AssertEqual(t, user.Username, "alice")
		testutil.AssertEqual(t, user.Timezone, "UTC")
	})

	t.Run("GetOrCreate is stable and refreshes username", func(t *testing.T) {
		first, err := users.GetOrCreate("444555666", "bob")
		testutil.AssertNoError(t, err)

		second, err := users.GetOrCreate("444555666", "bobby")
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, second.ID, first.ID)
		testutil.AssertEqual(t, second.Username, "bobby")
	})

	t.Run("GetByID missing", func(t *testing.T) {
		_, err := users.GetByID(9999)
		testutil.AssertTrue(t, errors.Is(err, core.ErrUserNotFound), "expected ErrUserNotFound")
	})

	t.Run("SetTimezone", func(t *testing.T) {
		user, err := users.GetOrCreate("777888999", "carol")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, users.SetTimezone(user.ID, "Europe/Berlin"))

		got, err := users.GetByID(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Timezone, "Europe/Berlin")
	})
}

func TestEventStore(t *testing.T) {
	db := testutil.TestDB(t)
	events := storage.NewEventStore(db)
	alice := testutil.MakeUser(t, db, "1001", "alice")
	bob := testutil.MakeUser(t, db, "1002", "bob")

	t.Run("Create and GetByID", func(t *testing.T) {
		event := testutil.MakeEvent(t, db, alice.ID, "Movie Night", time.Now().Add(48*time.Hour))

		got, err := events.GetByID(event.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Title, "Movie Night")
		testutil.AssertTrue(t, got.Remind24h, "24h reminder should default on")
		testutil.AssertTrue(t, got.Remind1h, "1h reminder should default on")
	})

	t.Run("GetByID missing", func(t *testing.T) {
		_, err := events.GetByID(9999)
		testutil.AssertTrue(t, errors.Is(err, core.ErrEventNotFound), "expected ErrEventNotFound")
	})

	t.Run("ListUpcoming excludes the past", func(t *testing.T) {
		now := time.Now()
		testutil.MakeEvent(t, db, alice.ID, "Future Dinner", now.Add(72*time.Hour))

		list, err := events.ListUpcoming(now, 10)
		testutil.AssertNoError(t, err)
		for _, e := range list {
			testutil.AssertTrue(t, !e.StartsAt.Before(now.UTC().Add(-time.Second)),
				"past event in upcoming list: "+e.Title)
		}
	})

	t.Run("SetAttendee upserts", func(t *testing.T) {
		event := testutil.MakeEvent(t, db, alice.ID, "Board Games", time.Now().Add(24*time.Hour))

		testutil.AssertNoError(t, events.SetAttendee(event.ID, bob.ID, core.AttendeePending))
		testutil.AssertNoError(t, events.SetAttendee(event.ID, bob.ID, core.AttendeeAccepted))

		attendees, err := events.Attendees(event.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(attendees), 1)
		testutil.AssertEqual(t, attendees[0].Status, core.AttendeeAccepted)
		testutil.AssertTrue(t, attendees[0].RespondedAt != nil, "expected responded_at stamp")
	})
}

func TestCookingStore(t *testing.T) {
	db := testutil.TestDB(t)
	cooking := storage.NewCookingStore(db)
	alice := testutil.MakeUser(t, db, "2001", "alice")

	t.Run("Create round-trips the recipe", func(t *testing.T) {
		a := testutil.MakeCooking(t, db, alice.ID, "2026-09-01", "Lasagna")

		got, err := cooking.GetByID(a.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.DishName, "Lasagna")
		testutil.AssertTrue(t, got.Recipe != nil, "expected recipe payload")
		testutil.AssertEqual(t, got.Recipe.PrepMinutes, 15)
		testutil.AssertEqual(t, got.Recipe.CookMinutes, 30)
		testutil.AssertEqual(t, len(got.Recipe.Instructions), 3)
		testutil.AssertEqual(t, got.Source, core.SourceFallback)
	})

	t.Run("Create without recipe", func(t *testing.T) {
		a := &core.CookingAssignment{
			Date:     "2026-09-02",
			Meal:     core.MealLunch,
			CookID:   alice.ID,
			DishName: "Leftovers",
			Source:   core.SourceFallback,
		}
		testutil.AssertNoError(t, cooking.Create(a))

		got, err := cooking.GetByID(a.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, got.Recipe == nil, "expected no recipe payload")
	})

	t.Run("ListByDate", func(t *testing.T) {
		testutil.MakeCooking(t, db, alice.ID, "2026-09-03", "Curry")
		testutil.MakeCooking(t, db, alice.ID, "2026-09-03", "Pancakes")

		meals, err := cooking.ListByDate("2026-09-03")
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(meals), 2)
	})

	t.Run("ListUpcoming respects start date", func(t *testing.T) {
		meals, err := cooking.ListUpcoming("2026-09-02", 10)
		testutil.AssertNoError(t, err)
		for _, m := range meals {
			testutil.AssertTrue(t, m.Date >= "2026-09-02", "stale date in upcoming list: "+m.Date)
		}
	})
}

func TestTodoStore(t *testing.T) {
	db := testutil.TestDB(t)
	todos := storage.NewTodoStore(db)
	alice := testutil.MakeUser(t, db, "3001", "alice")
	bob := testutil.MakeUser(t, db, "3002", "bob")

	t.Run("Create defaults to pending", func(t *testing.T) {
		item := testutil.MakeTodo(t, db, alice.ID, "Water plants", 10, 2)
		got, err := todos.GetByID(item.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Status, core.TodoPending)
	})

	t.Run("ListByOwner orders by importance and filters status", func(t *testing.T) {
		low := testutil.MakeTodo(t, db, bob.ID, "Low", 30, 1)
		high := testutil.MakeTodo(t, db, bob.ID, "High", 30, 5)
		testutil.AssertNoError(t, todos.Complete(low.ID))

		pending, err := todos.ListByOwner(bob.ID, core.TodoPending, 10)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(pending), 1)
		testutil.AssertEqual(t, pending[0].ID, high.ID)

		all, err := todos.ListByOwner(bob.ID, "", 10)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(all), 2)
		testutil.AssertEqual(t, all[0].ID, high.ID)
	})

	t.Run("Complete stamps completed_at and is terminal", func(t *testing.T) {
		item := testutil.MakeTodo(t, db, alice.ID, "Take out trash", 5, 3)
		testutil.AssertNoError(t, todos.Complete(item.ID))

		got, err := todos.GetByID(item.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Status, core.TodoCompleted)
		testutil.AssertTrue(t, got.CompletedAt != nil, "expected completed_at stamp")
	})

	t.Run("Delete missing", func(t *testing.T) {
		err := todos.Delete(9999)
		testutil.AssertTrue(t, errors.Is(err, core.ErrTodoNotFound), "expected ErrTodoNotFound")
	})
}

func TestPlanStore(t *testing.T) {
	db := testutil.TestDB(t)
	plans := storage.NewPlanStore(db)
	alice := testutil.MakeUser(t, db, "4001", "alice")
	t1 := testutil.MakeTodo(t, db, alice.ID, "Task one", 30, 3)
	t2 := testutil.MakeTodo(t, db, alice.ID, "Task two", 60, 4)

	date := "2026-09-10"
	slots := []core.PlanSlot{
		{TodoID: t2.ID, StartTime: "09:00", DurationMinutes: 60, Rationale: "high importance first"},
		{TodoID: t1.ID, StartTime: "10:05", DurationMinutes: 30},
	}

	t.Run("Replace then Get ordered by start time", func(t *testing.T) {
		testutil.AssertNoError(t, plans.Replace(alice.ID, date, slots, core.SourceFallback))

		entries, err := plans.Get(alice.ID, date)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(entries), 2)
		testutil.AssertEqual(t, entries[0].StartTime, "09:00")
		testutil.AssertEqual(t, entries[0].TodoID, t2.ID)
		testutil.AssertEqual(t, entries[1].StartTime, "10:05")
	})

	t.Run("Replace is wholesale", func(t *testing.T) {
		replacement := []core.PlanSlot{
			{TodoID: t1.ID, StartTime: "14:00", DurationMinutes: 30},
		}
		testutil.AssertNoError(t, plans.Replace(alice.ID, date, replacement, core.SourceAI))

		entries, err := plans.Get(alice.ID, date)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(entries), 1)
		testutil.AssertEqual(t, entries[0].StartTime, "14:00")
		testutil.AssertEqual(t, entries[0].Source, core.SourceAI)
	})

	t.Run("Clear", func(t *testing.T) {
		testutil.AssertNoError(t, plans.Clear(alice.ID, date))
		entries, err := plans.Get(alice.ID, date)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(entries), 0)
	})

	t.Run("Deleting a todo cascades its plan entries", func(t *testing.T) {
		testutil.AssertNoError(t, plans.Replace(alice.ID, date, []core.PlanSlot{
			{TodoID: t1.ID, StartTime: "09:00", DurationMinutes: 30},
		}, core.SourceFallback))

		testutil.AssertNoError(t, storage.NewTodoStore(db).Delete(t1.ID))

		entries, err := plans.Get(alice.ID, date)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(entries), 0)
	})
}
