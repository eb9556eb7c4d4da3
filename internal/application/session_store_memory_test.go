package application

import (
	"reflect"
	"testing"

	"session-store/internal/adapters/output/memory"
	"session-store/internal/domain"
)

// These tests run the full use cases against the in-memory repository
// instead of mocks, exercising serialization and the upsert protocol end
// to end.

// TestSetThenGetRoundTripsPayload tests that a stored payload comes back
// deep-equal before its ttl elapses
func TestSetThenGetRoundTripsPayload(t *testing.T) {
	store := connectedMemoryStore(t, Options{TTL: domain.FixedTTL(60)})

	payload := domain.SessionData{
		"user":   "alice",
		"count":  float64(3),
		"nested": map[string]interface{}{"flag": true},
		"cookie": map[string]interface{}{"maxAge": float64(3600000)},
	}
	if err := store.Set("A", payload); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}

	got, err := store.Get("A")
	if err != nil {
		t.Fatalf("expected Get to succeed, got %v", err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("expected payload to round-trip deep-equal,\nwant %v\ngot  %v", payload, got)
	}
}

// TestGetAfterExpiryReturnsAbsent tests that an elapsed ttl yields no
// data, not an error
func TestGetAfterExpiryReturnsAbsent(t *testing.T) {
	repo := memory.NewSessionRepository()
	store := NewSessionStoreService(Options{TTL: domain.FixedTTL(60)})
	if err := store.Connect(repo); err != nil {
		t.Fatalf("expected Connect to succeed, got %v", err)
	}

	if err := store.Set("A", domain.SessionData{"user": "alice"}); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}
	// Simulate the ttl elapsing by forcing the expiry into the past
	if err := repo.Touch("A", domain.NowMillis()-1); err != nil {
		t.Fatalf("expected expiry manipulation to succeed, got %v", err)
	}

	got, err := store.Get("A")
	if err != nil {
		t.Fatalf("expected expired Get to succeed with no data, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil payload for expired session, got %v", got)
	}
}

// TestDestroyThenGetReturnsAbsent tests soft-delete invisibility
func TestDestroyThenGetReturnsAbsent(t *testing.T) {
	store := connectedMemoryStore(t, Options{})

	if err := store.Set("A", domain.SessionData{"user": "alice"}); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}
	if err := store.Destroy("A"); err != nil {
		t.Fatalf("expected Destroy to succeed, got %v", err)
	}

	got, err := store.Get("A")
	if err != nil {
		t.Fatalf("expected Get after destroy to succeed, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil payload for destroyed session, got %v", got)
	}
}

// TestDestroyThenSetRevivesSession tests the idempotent revival sequence
func TestDestroyThenSetRevivesSession(t *testing.T) {
	store := connectedMemoryStore(t, Options{TTL: domain.FixedTTL(60)})

	if err := store.Set("A", domain.SessionData{"v": float64(1)}); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}
	if err := store.Destroy("A"); err != nil {
		t.Fatalf("expected Destroy to succeed, got %v", err)
	}
	if err := store.Set("A", domain.SessionData{"v": float64(2)}); err != nil {
		t.Fatalf("expected Set after destroy to succeed, got %v", err)
	}

	got, err := store.Get("A")
	if err != nil {
		t.Fatalf("expected revived session to be readable, got %v", err)
	}
	if got == nil || got["v"] != float64(2) {
		t.Errorf("expected revived session with fresh payload, got %v", got)
	}
}

// TestAllEnumeratesExactlyVisibleSessions tests the annotated enumeration
func TestAllEnumeratesExactlyVisibleSessions(t *testing.T) {
	repo := memory.NewSessionRepository()
	store := NewSessionStoreService(Options{TTL: domain.FixedTTL(60)})
	if err := store.Connect(repo); err != nil {
		t.Fatalf("expected Connect to succeed, got %v", err)
	}

	for _, sid := range []string{"a", "b", "c"} {
		if err := store.Set(sid, domain.SessionData{"sid": sid}); err != nil {
			t.Fatalf("expected Set to succeed, got %v", err)
		}
	}
	if err := store.Destroy("b"); err != nil {
		t.Fatalf("expected Destroy to succeed, got %v", err)
	}
	if err := repo.Touch("c", domain.NowMillis()-1); err != nil {
		t.Fatalf("expected expiry manipulation to succeed, got %v", err)
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("expected All to succeed, got %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 visible session, got %d", len(all))
	}
	if all[0]["id"] != "a" || all[0]["sid"] != "a" {
		t.Errorf("expected session a annotated with its id, got %v", all[0])
	}
}

// TestSetTriggersBoundedCleanup tests that set evicts at most the
// configured number of expired rows
func TestSetTriggersBoundedCleanup(t *testing.T) {
	repo := memory.NewSessionRepository()
	store := NewSessionStoreService(Options{TTL: domain.FixedTTL(60), CleanupLimit: 2})
	if err := store.Connect(repo); err != nil {
		t.Fatalf("expected Connect to succeed, got %v", err)
	}

	// Seed expired rows directly so the only cleanup run is the one the
	// final set triggers
	for _, sid := range []string{"e1", "e2", "e3"} {
		if err := repo.Insert(&domain.Session{ID: sid, JSON: `{}`, ExpiredAt: domain.NowMillis() - 1}); err != nil {
			t.Fatalf("expected seed insert to succeed, got %v", err)
		}
	}

	if err := store.Set("fresh", domain.SessionData{}); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}

	surviving := 0
	for _, sid := range []string{"e1", "e2", "e3"} {
		if any, _ := repo.FindAny(sid); any != nil {
			surviving++
		}
	}
	if surviving != 1 {
		t.Errorf("expected cleanup to purge at most 2 expired rows, %d survived", surviving)
	}
	if got, _ := store.Get("fresh"); got == nil {
		t.Error("expected the fresh session to be stored")
	}
}

// Test helper wiring the service to a fresh in-memory repository
func connectedMemoryStore(t *testing.T, opts Options) *SessionStoreService {
	t.Helper()
	store := NewSessionStoreService(opts)
	if err := store.Connect(memory.NewSessionRepository()); err != nil {
		t.Fatalf("expected Connect to succeed, got %v", err)
	}
	return store
}
