package storage

import (
	"context"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs := []Run{
		{ID: "a", Player: "ann", Score: 100, Level: 3, Jumps: 40},
		{ID: "b", Player: "bob", Score: 50, Level: 2, Jumps: 20},
		{ID: "c", Player: "ann", Score: 200, Level: 3, Jumps: 80},
	}
	for _, r := range runs {
		if err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.ID, err)
		}
	}

	top, err := store.TopRuns(ctx, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, score := range expected {
		if top[i].Score != score {
			t.Errorf("run %d: expected score %d, got %d", i, score, top[i].Score)
		}
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	limited, err := store.TopRuns(ctx, 1)
	if err != nil {
		t.Fatalf("TopRuns(1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{ID: "same", Player: "ann", Score: 1}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.SaveRun(ctx, run); err == nil {
		t.Error("Saving the same run ID twice should fail")
	}
}

func TestStoreTopPlayersAndRank(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{ID: "1", Player: "ann", Score: 10, Level: 2, CreatedAt: base},
		{ID: "2", Player: "ann", Score: 30, Level: 3, CreatedAt: base.Add(time.Minute)},
		{ID: "3", Player: "bob", Score: 20, Level: 2, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "4", Player: "cyd", Score: 5, Level: 1, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, r := range runs {
		if err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.ID, err)
		}
	}

	players, err := store.TopPlayers(ctx, 10)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("Expected one row per player (3), got %d", len(players))
	}
	if players[0].Player != "ann" || players[0].BestScore != 30 || players[0].Runs != 2 {
		t.Errorf("first row = %+v, expected ann with 30 over 2 runs", players[0])
	}
	if players[0].BestLevel != 3 {
		t.Errorf("best level = %d, expected level of the best run (3)", players[0].BestLevel)
	}

	tests := []struct {
		player string
		rank   int
		best   int
	}{
		{"ann", 1, 30},
		{"bob", 2, 20},
		{"cyd", 3, 5},
	}
	for _, tc := range tests {
		r, err := store.PlayerRank(ctx, tc.player)
		if err != nil {
			t.Fatalf("PlayerRank(%s) failed: %v", tc.player, err)
		}
		if r == nil {
			t.Fatalf("PlayerRank(%s) returned nil", tc.player)
		}
		if r.Rank != tc.rank || r.BestScore != tc.best || r.Total != 3 {
			t.Errorf("PlayerRank(%s) = %+v, expected rank %d best %d of 3", tc.player, r, tc.rank, tc.best)
		}
	}

	r, err := store.PlayerRank(ctx, "nobody")
	if err != nil {
		t.Fatalf("PlayerRank(nobody) failed: %v", err)
	}
	if r != nil {
		t.Errorf("PlayerRank for a player with no runs should be nil, got %+v", r)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest("ann")
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", best)
	}

	if err := store.SaveBest("ann", 12); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}
	// A lower score must not overwrite
	if err := store.SaveBest("ann", 3); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}

	best, err = store.LoadBest("ann")
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 12 {
		t.Errorf("Expected best 12, got %d", best)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveRun(ctx, Run{ID: "1", Player: "ann", Score: 10, Jumps: 5}) //nolint:errcheck
	store.SaveRun(ctx, Run{ID: "2", Player: "bob", Score: 30, Jumps: 7}) //nolint:errcheck

	high, err = store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score 30, got %d", high)
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Players != 2 || stats.TotalJumps != 12 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %f", stats.AvgScore)
	}

	if err := store.ClearRuns(ctx); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	high, _ = store.HighScore(ctx)
	if high != 0 {
		t.Errorf("Expected 0 after clear, got %d", high)
	}
}
