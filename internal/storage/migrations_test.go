package storage_test

import (
	"testing"

	"github.com/hearthbot/hearth/internal/storage"
	"github.com/hearthbot/hearth/internal/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.TestDB(t) // Already migrated once

	testutil.AssertNoError(t, db.Migrate())
	testutil.AssertNoError(t, db.Migrate())

	// The schema is usable afterwards
	_, err := storage.NewUserStore(db).GetOrCreate("42", "alice")
	testutil.AssertNoError(t, err)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testutil.TestDB(t)

	// An attendee row for a nonexistent event must be rejected
	err := storage.NewEventStore(db).SetAttendee(12345, 1, "accepted")
	testutil.AssertError(t, err)
}
