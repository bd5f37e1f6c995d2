package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bankbot/core/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.QueryHistoryModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db, zap.NewNop())
}

func appendEntry(t *testing.T, svc *Service, userID, sessionID, query string) *models.QueryHistoryModel {
	t.Helper()
	row, err := svc.Append(context.Background(), AppendParams{
		UserID:       userID,
		SessionID:    sessionID,
		Route:        models.RouteAnswer,
		QueryText:    query,
		ResponseText: `{"answer":"body for ` + query + `"}`,
	})
	if err != nil {
		t.Fatalf("Append(%q): %v", query, err)
	}
	// Keep created_at strictly increasing so ordering is observable.
	time.Sleep(2 * time.Millisecond)
	return row
}

func TestAppendAndEntriesRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := appendEntry(t, svc, "u1", "", "first question")
	if first.SessionID == "" {
		t.Fatal("Append must start a fresh session when none is given")
	}
	sessionID := first.SessionID
	appendEntry(t, svc, "u1", sessionID, "second question")
	appendEntry(t, svc, "u1", sessionID, "third question")

	entries, err := svc.Entries(ctx, "u1", sessionID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	wantOrder := []string{"third question", "second question", "first question"}
	for i, want := range wantOrder {
		if entries[i].QueryText != want {
			t.Fatalf("entries[%d] = %q, want %q (newest first)", i, entries[i].QueryText, want)
		}
	}
}

func TestEntriesScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	row := appendEntry(t, svc, "u1", "", "private question")

	entries, err := svc.Entries(ctx, "u2", row.SessionID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("another user read %d entries of a foreign session", len(entries))
	}
}

func TestDeleteSessionRemovesAllEntries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	row := appendEntry(t, svc, "u1", "", "q1")
	appendEntry(t, svc, "u1", row.SessionID, "q2")

	if err := svc.DeleteSession(ctx, "u1", row.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	entries, err := svc.Entries(ctx, "u1", row.SessionID)
	if err != nil {
		t.Fatalf("Entries after delete: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries after delete, want 0", len(entries))
	}

	// Deleting again, or deleting an unknown session, is a no-op.
	if err := svc.DeleteSession(ctx, "u1", row.SessionID); err != nil {
		t.Fatalf("repeated DeleteSession: %v", err)
	}
	if err := svc.DeleteSession(ctx, "u1", "no-such-session"); err != nil {
		t.Fatalf("DeleteSession of unknown session: %v", err)
	}
}

func TestDeleteSessionScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	row := appendEntry(t, svc, "u1", "", "q1")

	if err := svc.DeleteSession(ctx, "u2", row.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	entries, err := svc.Entries(ctx, "u1", row.SessionID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatal("a foreign delete must not touch the owner's session")
	}
}

func TestListSessionsNewestActivityFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	older := appendEntry(t, svc, "u1", "", "older session question")
	newer := appendEntry(t, svc, "u1", "", "newer session question")
	// Activity in the older session moves it back to the front.
	appendEntry(t, svc, "u1", older.SessionID, "follow-up question")

	summaries, err := svc.ListSessions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d sessions, want 2", len(summaries))
	}
	if summaries[0].SessionID != older.SessionID || summaries[1].SessionID != newer.SessionID {
		t.Fatalf("session order = %s, %s", summaries[0].SessionID, summaries[1].SessionID)
	}
	if summaries[0].LastQuery != "follow-up question" {
		t.Fatalf("last query = %q", summaries[0].LastQuery)
	}
}
