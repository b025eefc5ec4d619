// Package storage provides SQLite-based persistence for runs and best scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the database lives unless --db says otherwise.
const DefaultPath = "~/.arcade/flappy.db"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished run as stored in the runs table.
type Run struct {
	ID         string // UUID
	Player     string
	Score      int
	Level      int
	DurationMs int64
	Jumps      int
	MaxHeight  float64
	CreatedAt  time.Time
}

// PlayerBest is a player's best run plus their run count.
type PlayerBest struct {
	Player     string
	BestScore  int
	BestLevel  int
	Runs       int
	AchievedAt time.Time
}

// PlayerRank places one player among everyone who has submitted a run.
type PlayerRank struct {
	Rank      int
	BestScore int
	Runs      int
	Total     int
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	TotalJumps int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Runs are written from gateway goroutines; one connection serializes them.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			jumps INTEGER NOT NULL DEFAULT 0,
			max_height REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Saving the same ID twice is an error.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, player, score, level, duration_ms, jumps, max_height, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Score, r.Level, r.DurationMs, r.Jumps, r.MaxHeight,
		r.CreatedAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// TopRuns retrieves the top N runs. Results are ordered by score descending.
func (s *Store) TopRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, level, duration_ms, jumps, max_height, created_at
		 FROM runs
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Level, &r.DurationMs, &r.Jumps, &r.MaxHeight, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// TopPlayers returns each player's best run, best first.
func (s *Store) TopPlayers(ctx context.Context, limit int) ([]PlayerBest, error) {
	if limit <= 0 {
		limit = 10
	}

	// SQLite returns the bare columns of the row that produced MAX(score).
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, MAX(score), level, COUNT(*), created_at
		 FROM runs
		 GROUP BY player
		 ORDER BY MAX(score) DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var best []PlayerBest
	for rows.Next() {
		var b PlayerBest
		var achievedAt any
		if err := rows.Scan(&b.Player, &b.BestScore, &b.BestLevel, &b.Runs, &achievedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.AchievedAt = parseTime(achievedAt)
		best = append(best, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// PlayerRank returns the player's 1-based rank by best run score,
// or nil if the player has no runs.
func (s *Store) PlayerRank(ctx context.Context, player string) (*PlayerRank, error) {
	var r PlayerRank
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score), COUNT(*) FROM runs WHERE player = ?",
		player,
	).Scan(&best, &r.Runs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	if !best.Valid {
		return nil, nil
	}
	r.BestScore = int(best.Int64)

	err = s.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM (SELECT MAX(score) AS best FROM runs GROUP BY player) WHERE best > ?) + 1,
		   (SELECT COUNT(DISTINCT player) FROM runs)`,
		r.BestScore,
	).Scan(&r.Rank, &r.Total)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rank: %w", err)
	}

	return &r, nil
}

// HighScore returns the highest score of any run.
// Returns 0 if no runs exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// LoadBest returns the persisted best score of player, 0 if none.
func (s *Store) LoadBest(player string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE player = ?", player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return score, nil
}

// SaveBest persists score as player's best. A lower score never replaces a higher one.
func (s *Store) SaveBest(player string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (player, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   score = excluded.score,
		   updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ClearRuns deletes all runs and best scores.
func (s *Store) ClearRuns(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs; DELETE FROM best_scores;"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(jumps), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalJumps, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
