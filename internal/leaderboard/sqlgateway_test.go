package leaderboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func submit(t *testing.T, gw *SQLGateway, score int) {
	t.Helper()
	s := NewRunSummary(gw.Player(), score, 1, 1500, 4, 3)
	if err := gw.SubmitRun(context.Background(), s); err != nil {
		t.Fatalf("SubmitRun(%d): %v", score, err)
	}
}

func TestSQLGatewaySubmitAndTopN(t *testing.T) {
	store := openStore(t)
	alice := NewSQLGateway(store, "alice")
	bob := NewSQLGateway(store, "bob")

	submit(t, alice, 3)
	submit(t, alice, 9)
	submit(t, bob, 5)

	standings, err := alice.TopN(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected one row per player, got %d", len(standings))
	}

	want := []struct {
		player string
		score  int
		runs   int
	}{
		{"alice", 9, 2},
		{"bob", 5, 1},
	}
	for i, w := range want {
		got := standings[i]
		if got.Rank != i+1 || got.Player != w.player || got.Score != w.score || got.Runs != w.runs {
			t.Errorf("standing %d = %+v, want rank %d %s score %d runs %d",
				i, got, i+1, w.player, w.score, w.runs)
		}
	}
}

func TestSQLGatewayTopNLimit(t *testing.T) {
	store := openStore(t)
	for i, name := range []string{"a", "b", "c", "d"} {
		submit(t, NewSQLGateway(store, name), i+1)
	}

	standings, err := NewSQLGateway(store, "a").TopN(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}
	if standings[0].Player != "d" || standings[1].Player != "c" {
		t.Errorf("unexpected order: %s, %s", standings[0].Player, standings[1].Player)
	}
}

func TestSQLGatewayUserRank(t *testing.T) {
	store := openStore(t)
	alice := NewSQLGateway(store, "alice")
	bob := NewSQLGateway(store, "bob")

	rank, err := alice.UserRank(context.Background())
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if rank != nil {
		t.Fatalf("expected nil rank before any run, got %+v", rank)
	}

	submit(t, alice, 4)
	submit(t, bob, 7)
	submit(t, bob, 2)

	rank, err = alice.UserRank(context.Background())
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if rank == nil {
		t.Fatal("expected a rank after submitting")
	}
	if rank.Rank != 2 || rank.Total != 2 || rank.BestScore != 4 || rank.Runs != 1 || rank.Player != "alice" {
		t.Errorf("alice rank = %+v", rank)
	}

	rank, err = bob.UserRank(context.Background())
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if rank.Rank != 1 || rank.Runs != 2 || rank.BestScore != 7 {
		t.Errorf("bob rank = %+v", rank)
	}
}

func TestSQLGatewayWithoutIdentity(t *testing.T) {
	gw := NewSQLGateway(openStore(t), "")

	err := gw.SubmitRun(context.Background(), NewRunSummary("", 3, 1, 100, 1, 2))
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("SubmitRun: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := gw.UserRank(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("UserRank: expected ErrUnauthenticated, got %v", err)
	}

	// The public board is still readable anonymously.
	standings, err := gw.TopN(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(standings) != 0 {
		t.Errorf("expected empty board, got %d rows", len(standings))
	}
}

func TestSQLGatewayStoresIdentityNotSummaryPlayer(t *testing.T) {
	store := openStore(t)
	gw := NewSQLGateway(store, "ssh-user")

	s := NewRunSummary("someone-else", 6, 2, 2000, 8, 1)
	if err := gw.SubmitRun(context.Background(), s); err != nil {
		t.Fatalf("SubmitRun: %v", err)
	}

	runs, err := store.TopRuns(context.Background(), 1)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Player != "ssh-user" {
		t.Errorf("run stored as %q, want ssh-user", runs[0].Player)
	}
	if runs[0].ID != s.ID.String() {
		t.Errorf("run ID = %s, want %s", runs[0].ID, s.ID)
	}
	if runs[0].Level != 2 || runs[0].Jumps != 8 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestNewRunSummaryUniqueIDs(t *testing.T) {
	a := NewRunSummary("p", 1, 1, 10, 1, 0)
	b := NewRunSummary("p", 1, 1, 10, 1, 0)
	if a.ID == b.ID {
		t.Error("expected distinct run IDs")
	}
	if a.EndedAt.IsZero() {
		t.Error("expected EndedAt to be set")
	}
}
