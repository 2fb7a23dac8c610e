package history

import (
	"context"
	"testing"
)

func TestCreateAndGetSession(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "cli")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a generated session ID")
	}

	got, err := store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("expected session to exist")
	}
	if got.Source != "cli" {
		t.Errorf("expected source 'cli', got %q", got.Source)
	}
}

func TestGetMissingSessionReturnsNil(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	got, err := store.GetSession(context.Background(), "yok")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestAppendAndListTurnsInOrder(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	sess, err := store.CreateSession(ctx, "api")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	exchanges := []struct {
		role, content, intent string
	}{
		{"user", "Avatar filmi nasıldı?", "film_query"},
		{"assistant", "Avatar, Pandora'da geçen bir bilim kurgu filmidir.", ""},
		{"user", "Teşekkürler!", "general_chat"},
		{"assistant", "Rica ederim, iyi seyirler!", ""},
	}
	for _, e := range exchanges {
		if err := store.AppendTurn(ctx, sess.ID, e.role, e.content, e.intent); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}

	turns, err := store.Turns(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	for i, e := range exchanges {
		if turns[i].Role != e.role || turns[i].Content != e.content {
			t.Errorf("turn %d: got (%q, %q), want (%q, %q)",
				i, turns[i].Role, turns[i].Content, e.role, e.content)
		}
	}
	if turns[0].Intent != "film_query" {
		t.Errorf("expected classified intent on user turn, got %q", turns[0].Intent)
	}
}

func TestTurnsAreScopedToSession(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	a, _ := store.CreateSession(ctx, "cli")
	b, _ := store.CreateSession(ctx, "cli")

	if err := store.AppendTurn(ctx, a.ID, "user", "merhaba", ""); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	turns, err := store.Turns(ctx, b.ID)
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected no turns for other session, got %d", len(turns))
	}
}

func TestAppendTurnRejectsUnknownRole(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "cli")

	if err := store.AppendTurn(ctx, sess.ID, "robot", "bip", ""); err == nil {
		t.Error("expected CHECK constraint violation for unknown role")
	}
}
