package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/zhouzirui/aoc-chat/backend/internal/errors"
	model "github.com/zhouzirui/aoc-chat/backend/internal/model/chat"
	chat "github.com/zhouzirui/aoc-chat/backend/internal/service/chat"
)

// steppingClock returns a clock that advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestServiceRecordTurnCreatesSession(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	session, err := svc.RecordTurn(ctx, "s1", "hello there", "hi!")
	if err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}

	if session.ID != "s1" {
		t.Fatalf("unexpected session ID: %s", session.ID)
	}
	if session.Title != "hello there" {
		t.Fatalf("unexpected title: %q", session.Title)
	}
	if len(session.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != model.RoleUser || session.Messages[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected roles: %s, %s", session.Messages[0].Role, session.Messages[1].Role)
	}
	if session.Messages[0].ID == "" || session.Messages[0].ID == session.Messages[1].ID {
		t.Fatalf("expected distinct message ids, got %q and %q", session.Messages[0].ID, session.Messages[1].ID)
	}
	if session.Messages[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestServiceRecordTurnAppendsInOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := chat.NewServiceWithClock(steppingClock(start))
	ctx := context.Background()

	if _, err := svc.RecordTurn(ctx, "s1", "first question", "first answer"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}
	if _, err := svc.RecordTurn(ctx, "s1", "second question", "second answer"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}

	got, err := svc.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}

	want := []string{"first question", "first answer", "second question", "second answer"}
	if len(got.Messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got.Messages))
	}
	for i, content := range want {
		if got.Messages[i].Content != content {
			t.Fatalf("message %d: got %q want %q", i, got.Messages[i].Content, content)
		}
	}
	if got.Title != "first question" {
		t.Fatalf("title changed: %q", got.Title)
	}
	if !got.Created.Equal(start) {
		t.Fatalf("created changed: got %v want %v", got.Created, start)
	}
}

func TestServiceRecordTurnDefaultsSessionID(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	if _, err := svc.RecordTurn(ctx, "", "hi", "hello"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}
	if _, err := svc.GetSession(ctx, model.DefaultSessionID); err != nil {
		t.Fatalf("expected default session, got err: %v", err)
	}
}

func TestServiceListSessionsNewestFirst(t *testing.T) {
	svc := chat.NewServiceWithClock(steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	for _, id := range []string{"t1", "t2", "t3"} {
		if _, err := svc.RecordTurn(ctx, id, "message "+id, "reply"); err != nil {
			t.Fatalf("RecordTurn err: %v", err)
		}
	}

	sessions := svc.ListSessions(ctx)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, id := range []string{"t3", "t2", "t1"} {
		if sessions[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, sessions[i].ID, id)
		}
		if sessions[i].MessageCount != 2 {
			t.Fatalf("unexpected message count for %s: %d", id, sessions[i].MessageCount)
		}
	}
}

func TestServiceListSessionsEmpty(t *testing.T) {
	svc := chat.NewService()
	sessions := svc.ListSessions(context.Background())
	if sessions == nil || len(sessions) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", sessions)
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if svc.Len() != 0 {
		t.Fatalf("lookup mutated store: %d sessions", svc.Len())
	}
}

func TestServiceDeleteSession(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	if _, err := svc.RecordTurn(ctx, "s1", "hi", "hello"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}
	if err := svc.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSession err: %v", err)
	}
	if _, err := svc.GetSession(ctx, "s1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.DeleteSession(ctx, "s1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestServiceDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	if _, err := svc.RecordTurn(ctx, "keep", "hi", "hello"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}
	if err := svc.DeleteSession(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
	if svc.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", svc.Len())
	}
}

func TestServiceGetSessionReturnsCopy(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	if _, err := svc.RecordTurn(ctx, "s1", "hi", "hello"); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}

	got, _ := svc.GetSession(ctx, "s1")
	got.Messages[0].Content = "tampered"

	again, _ := svc.GetSession(ctx, "s1")
	if again.Messages[0].Content != "hi" {
		t.Fatalf("store was mutated through returned copy: %q", again.Messages[0].Content)
	}
}

func TestServiceConcurrentTurnsOnNewSession(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	const turns = 20
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RecordTurn(ctx, "shared", "question", "answer"); err != nil {
				t.Errorf("RecordTurn err: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, "shared")
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if len(got.Messages) != turns*2 {
		t.Fatalf("expected %d messages, got %d", turns*2, len(got.Messages))
	}
	for i := 0; i < len(got.Messages); i += 2 {
		if got.Messages[i].Role != model.RoleUser || got.Messages[i+1].Role != model.RoleAssistant {
			t.Fatalf("turn at %d not paired user/assistant", i)
		}
	}
}
