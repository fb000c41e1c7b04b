package memory

import (
	"testing"

	"timed-quiz-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	c := app.NewController("session-1", app.TickerScheduler{}, app.Options{})
	store.Put(c)
	if got, ok := store.Get("session-1"); !ok || got != c {
		t.Fatalf("expected session present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	store.Delete("session-1")
	if _, ok := store.Get("session-1"); ok {
		t.Fatalf("expected session removed")
	}
}
