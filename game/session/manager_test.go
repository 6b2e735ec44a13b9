package session

import (
	"errors"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/mazechase/game/engine"
)

func testConfig() *engine.GameConfig {
	config := &engine.GameConfig{
		Name:        "Session Test Maze",
		Description: "Maze for session manager tests",
		GridSize:    5,
		Layout: []string{
			"WWWWW",
			"WS..W",
			"W.W.W",
			"W..EW",
			"WWWWW",
		},
		Legend: map[string]string{
			"W": "wall",
			".": "floor",
			"S": "start",
			"E": "enemy",
		},
		PelletPoints:    10,
		PowerPoints:     50,
		PowerDuration:   5,
		EnemyTickMillis: 500,
		PowerTickMillis: 1000,
	}
	config.Messages.Welcome = "Welcome"
	config.Messages.PelletEaten = "Pellet! +%d"
	config.Messages.PowerEaten = "Power! +%d"
	config.Messages.Caught = "Caught"
	return config
}

func TestCreateGeneratesID(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(sess.ID) != 4 {
		t.Errorf("expected 4-character ID, got %q", sess.ID)
	}
	if sess.Engine == nil {
		t.Error("expected session to carry an engine")
	}
	if sess.CreatedAt.IsZero() || sess.LastAccessedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestCreateWithExplicitID(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("ABCD", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID != "abcd" {
		t.Errorf("expected normalized ID abcd, got %s", sess.ID)
	}

	if _, err := m.Create("abcd", testConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("expected ErrSessionAlreadyExists, got %v", err)
	}
	if _, err := m.Create("AbCd", testConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("expected case-insensitive duplicate detection, got %v", err)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	m := NewManager()

	if _, err := m.Create("ab12", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, id := range []string{"ab12", "AB12", " ab12 "} {
		if _, err := m.Get(id); err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
		}
	}

	if _, err := m.Get("ffff"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetOrCreate(t *testing.T) {
	m := NewManager()

	first, err := m.GetOrCreate("beef", testConfig())
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := m.GetOrCreate("beef", testConfig())
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("expected the same session instance back")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 session, got %d", m.Count())
	}
}

func TestListAndDelete(t *testing.T) {
	m := NewManager()

	for i := 0; i < 3; i++ {
		if _, err := m.Create("", testConfig()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if len(m.List()) != 3 {
		t.Errorf("expected 3 sessions, got %d", len(m.List()))
	}

	id := m.List()[0].ID
	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 sessions after delete, got %d", m.Count())
	}
	if err := m.Delete(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	m := NewManager()

	sess, err := m.Create("", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := sess.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	if err := m.UpdateLastAccessed(sess.ID); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("expected LastAccessedAt to advance")
	}

	if err := m.UpdateLastAccessed("ffff"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager()

	stale, err := m.Create("", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fresh, err := m.Create("", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpiredSessions(time.Hour)
	if len(removed) != 1 || removed[0] != stale.ID {
		t.Errorf("expected only %s removed, got %v", stale.ID, removed)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Errorf("fresh session should survive cleanup: %v", err)
	}
}

func TestUniqueGeneratedIDs(t *testing.T) {
	m := NewManager()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess, err := m.Create("", testConfig())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[sess.ID] {
			t.Fatalf("duplicate session ID generated: %s", sess.ID)
		}
		seen[sess.ID] = true
	}
}
