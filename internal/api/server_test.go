package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hearthbot/hearth/internal/api"
	"github.com/hearthbot/hearth/internal/core"
	"github.com/hearthbot/hearth/internal/scheduler"
	"github.com/hearthbot/hearth/internal/storage"
	"github.com/hearthbot/hearth/internal/testutil"
)

func newTestServer(t *testing.T, db *storage.DB) *api.Server {
	t.Helper()
	return api.New(api.Config{
		Port:      0,
		Scheduler: scheduler.New("UTC"),
		DB:        db,
	})
}

func get(t *testing.T, server *api.Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, testutil.TestDB(t))

	rec, body := get(t, server, "/healthz")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, body["status"].(string), "ok")
}

func TestStatus(t *testing.T) {
	db := testutil.TestDB(t)
	server := newTestServer(t, db)

	alice := testutil.MakeUser(t, db, "901", "alice")
	testutil.AssertNoError(t, storage.NewReminderStore(db).Create(&core.Reminder{
		Kind:        core.RemindEvent24h,
		ReferenceID: 1,
		UserID:      alice.ID,
		DueAt:       time.Now().Add(time.Hour),
	}))

	rec, body := get(t, server, "/api/status")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, int(body["pending_reminders"].(float64)), 1)
	if _, ok := body["scheduler"]; !ok {
		t.Error("scheduler stats missing from status")
	}
}

func TestPendingReminders(t *testing.T) {
	db := testutil.TestDB(t)
	server := newTestServer(t, db)

	alice := testutil.MakeUser(t, db, "902", "alice")
	reminders := storage.NewReminderStore(db)

	unsent := &core.Reminder{Kind: core.RemindEvent24h, ReferenceID: 1, UserID: alice.ID, DueAt: time.Now().Add(time.Hour)}
	testutil.AssertNoError(t, reminders.Create(unsent))

	sent := &core.Reminder{Kind: core.RemindEvent1h, ReferenceID: 1, UserID: alice.ID, DueAt: time.Now().Add(time.Hour)}
	testutil.AssertNoError(t, reminders.Create(sent))
	testutil.AssertNoError(t, reminders.MarkSent(sent.ID))

	rec, body := get(t, server, "/api/reminders/pending")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, int(body["count"].(float64)), 1)
}

func TestUpcomingCooking(t *testing.T) {
	db := testutil.TestDB(t)
	server := newTestServer(t, db)

	alice := testutil.MakeUser(t, db, "903", "alice")
	future := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	testutil.MakeCooking(t, db, alice.ID, future, "Curry")

	rec, body := get(t, server, "/api/cooking/upcoming")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, int(body["count"].(float64)), 1)

	meals := body["meals"].([]interface{})
	first := meals[0].(map[string]interface{})
	testutil.AssertEqual(t, first["dish_name"].(string), "Curry")
}
