package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	level, err := store.GetProgress("alice", "watersort")
	if err != nil {
		t.Fatalf("GetProgress() failed: %v", err)
	}
	if level != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", level)
	}

	if err := store.SetProgress("alice", "watersort", 3); err != nil {
		t.Fatalf("SetProgress() failed: %v", err)
	}
	if err := store.SetProgress("alice", "watersort", 4); err != nil {
		t.Fatalf("SetProgress() update failed: %v", err)
	}
	if err := store.SetProgress("bob", "watersort", 9); err != nil {
		t.Fatalf("SetProgress() failed: %v", err)
	}

	level, err = store.GetProgress("alice", "watersort")
	if err != nil {
		t.Fatalf("GetProgress() failed: %v", err)
	}
	if level != 4 {
		t.Errorf("Expected level 4, got %d", level)
	}

	all, err := store.AllProgress()
	if err != nil {
		t.Fatalf("AllProgress() failed: %v", err)
	}
	if len(all) != 2 || all[0].Player != "bob" {
		t.Errorf("AllProgress() = %+v, expected bob first", all)
	}

	if err := store.ResetProgress("alice", "watersort"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	level, _ = store.GetProgress("alice", "watersort")
	if level != 0 {
		t.Errorf("Expected 0 after reset, got %d", level)
	}
}

func TestSolvesAndStats(t *testing.T) {
	store := openTestStore(t)

	solves := []Solve{
		{RunID: "r1", Player: "alice", GameID: "watersort", Level: 1, Profile: "Easy", Pours: 12, Duration: 30 * time.Second, Outcome: "won"},
		{RunID: "r2", Player: "alice", GameID: "watersort", Level: 1, Profile: "Easy", Pours: 9, Duration: 40 * time.Second, Outcome: "won"},
		{RunID: "r3", Player: "alice", GameID: "watersort", Level: 2, Profile: "Easy", Pours: 5, Outcome: "stuck"},
		{RunID: "r4", Player: "bob", GameID: "watersort", Level: 2, Profile: "Easy", Pours: 14, Duration: time.Minute, Outcome: "won"},
	}
	for _, sv := range solves {
		if _, err := store.SaveSolve(sv); err != nil {
			t.Fatalf("SaveSolve(%s) failed: %v", sv.RunID, err)
		}
	}

	if _, err := store.SaveSolve(solves[0]); err == nil {
		t.Error("Expected duplicate run ID to fail")
	}

	best, err := store.BestSolves("watersort", 10)
	if err != nil {
		t.Fatalf("BestSolves() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(best))
	}
	if best[0].Level != 1 || best[0].Pours != 9 || best[0].Duration != 40*time.Second {
		t.Errorf("Best for level 1 = %+v, expected 9 pours", best[0])
	}
	if best[1].Level != 2 || best[1].Player != "bob" {
		t.Errorf("Best for level 2 = %+v, expected bob's win", best[1])
	}

	recent, err := store.RecentSolves("alice", 2)
	if err != nil {
		t.Fatalf("RecentSolves() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].RunID != "r3" {
		t.Errorf("RecentSolves() = %+v, expected r3 first", recent)
	}

	everyone, err := store.RecentSolves("", 10)
	if err != nil {
		t.Fatalf("RecentSolves() failed: %v", err)
	}
	if len(everyone) != 4 {
		t.Errorf("Expected 4 solves for everyone, got %d", len(everyone))
	}

	stats, err := store.GetStats("alice")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Won != 2 || stats.Stuck != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.TotalPours != 26 || stats.BestLevel != 1 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	if err := store.ClearSolves("alice"); err != nil {
		t.Fatalf("ClearSolves() failed: %v", err)
	}
	stats, err = store.GetStats("alice")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Attempts != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats after clear, got %+v", stats)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.watersort/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".watersort", "test.db")); err != nil {
		t.Errorf("Expected database under home: %v", err)
	}
}
