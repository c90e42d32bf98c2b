package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/storage"
	"github.com/hearthbot/hearth/internal/testutil"
)

func TestReminderStore(t *testing.T) {
	db := testutil.TestDB(t)
	reminders := storage.NewReminderStore(db)
	alice := testutil.MakeUser(t, db, "5001", "alice")
	bob := testutil.MakeUser(t, db, "5002", "bob")

	newReminder := func(kind core.ReminderKind, ref int64, user core.UserID, due time.Time) *core.Reminder {
		return &core.Reminder{
			Kind:        kind,
			ReferenceID: ref,
			UserID:      user,
			DueAt:       due,
			Message:     "test reminder",
		}
	}

	t.Run("Create assigns a UUID", func(t *testing.T) {
		r := newReminder(core.RemindEvent24h, 1, alice.ID, time.Now().Add(time.Hour))
		testutil.AssertNoError(t, reminders.Create(r))
		testutil.AssertTrue(t, r.ID != "", "expected assigned UUID")

		got, err := reminders.GetByID(r.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Kind, core.RemindEvent24h)
		testutil.AssertFalse(t, got.Sent, "new reminder must be unsent")
	})

	t.Run("duplicate kind+reference+user is rejected", func(t *testing.T) {
		first := newReminder(core.RemindEvent1h, 2, alice.ID, time.Now().Add(time.Hour))
		testutil.AssertNoError(t, reminders.Create(first))

		dup := newReminder(core.RemindEvent1h, 2, alice.ID, time.Now().Add(2*time.Hour))
		err := reminders.Create(dup)
		testutil.AssertTrue(t, errors.Is(err, core.ErrDuplicateRecord), "expected ErrDuplicateRecord")
	})

	t.Run("CreateIfAbsent is idempotent", func(t *testing.T) {
		r := newReminder(core.RemindCookingNextDay, 3, bob.ID, time.Now().Add(time.Hour))

		inserted, err := reminders.CreateIfAbsent(r)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, inserted, "first insert should land")

		again := newReminder(core.RemindCookingNextDay, 3, bob.ID, time.Now().Add(time.Hour))
		inserted, err = reminders.CreateIfAbsent(again)
		testutil.AssertNoError(t, err)
		testutil.AssertFalse(t, inserted, "second insert should be a no-op")
	})

	t.Run("same reference fans out per user", func(t *testing.T) {
		a := newReminder(core.RemindEvent24h, 4, alice.ID, time.Now().Add(time.Hour))
		b := newReminder(core.RemindEvent24h, 4, bob.ID, time.Now().Add(time.Hour))
		testutil.AssertNoError(t, reminders.Create(a))
		testutil.AssertNoError(t, reminders.Create(b))

		rows, err := reminders.ListByReference(core.RemindEvent24h, 4)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(rows), 2)
	})

	t.Run("Due returns only past-due unsent rows", func(t *testing.T) {
		now := time.Now()
		past := newReminder(core.RemindEvent24h, 5, alice.ID, now.Add(-time.Minute))
		future := newReminder(core.RemindEvent1h, 5, alice.ID, now.Add(time.Hour))
		testutil.AssertNoError(t, reminders.Create(past))
		testutil.AssertNoError(t, reminders.Create(future))

		due, err := reminders.Due(now)
		testutil.AssertNoError(t, err)
		for _, r := range due {
			testutil.AssertTrue(t, !r.DueAt.After(now.UTC()), "future reminder in due set: "+r.ID)
			testutil.AssertFalse(t, r.Sent, "sent reminder in due set: "+r.ID)
		}

		found := false
		for _, r := range due {
			if r.ID == past.ID {
				found = true
			}
			if r.ID == future.ID {
				t.Error("future reminder returned as due")
			}
		}
		testutil.AssertTrue(t, found, "past-due reminder missing from due set")
	})

	t.Run("MarkSent is monotonic", func(t *testing.T) {
		r := newReminder(core.RemindEvent24h, 6, alice.ID, time.Now().Add(-time.Minute))
		testutil.AssertNoError(t, reminders.Create(r))

		testutil.AssertNoError(t, reminders.MarkSent(r.ID))
		testutil.AssertNoError(t, reminders.MarkSent(r.ID))

		got, err := reminders.GetByID(r.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, got.Sent, "reminder should stay sent")

		due, err := reminders.Due(time.Now())
		testutil.AssertNoError(t, err)
		for _, d := range due {
			if d.ID == r.ID {
				t.Error("sent reminder still reported due")
			}
		}
	})

	t.Run("Pending and PendingCount agree", func(t *testing.T) {
		pending, err := reminders.Pending(100)
		testutil.AssertNoError(t, err)

		count, err := reminders.PendingCount()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(pending), count)
		for _, r := range pending {
			testutil.AssertFalse(t, r.Sent, "sent reminder in pending list")
		}
	})
}
