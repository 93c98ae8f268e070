package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

func newTestStore(t *testing.T, bus *events.Bus) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.json"), bus)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestCurrentMissingFileMeansLoggedOut(t *testing.T) {
	store := newTestStore(t, nil)

	sess := store.Current()
	if sess.LoggedIn() {
		t.Fatalf("expected logged-out session, got %+v", sess)
	}
	if store.Token() != "" {
		t.Fatalf("expected empty token, got %q", store.Token())
	}
}

func TestCurrentCorruptFileMeansLoggedOut(t *testing.T) {
	store := newTestStore(t, nil)
	if err := os.WriteFile(store.path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	if store.Current().LoggedIn() {
		t.Fatal("corrupt session file should read as logged out")
	}
}

func TestSetThenCurrentRoundTrips(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.AuthChanged)
	store := newTestStore(t, bus)

	want := models.Session{Token: "tok-123", Username: "dana", Name: "Dana"}
	if err := store.Set(want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := store.Current()
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
	select {
	case evt := <-ch:
		if evt.Type != events.AuthChanged {
			t.Fatalf("unexpected event type %q", evt.Type)
		}
	default:
		t.Fatal("Set did not publish AuthChanged")
	}
}

func TestClearRemovesSessionAndPublishes(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.AuthChanged)
	store := newTestStore(t, bus)

	if err := store.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	<-ch // drain the Set event

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Current().LoggedIn() {
		t.Fatal("session should be gone after Clear")
	}
	select {
	case <-ch:
	default:
		t.Fatal("Clear did not publish AuthChanged")
	}
}

func TestClearWhenLoggedOutPublishesNothing(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.AuthChanged)
	store := newTestStore(t, bus)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	select {
	case evt := <-ch:
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}
