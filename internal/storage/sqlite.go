// Package storage provides SQLite-based persistence for level progress and
// solve history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalPlayer is the player name used for games played in a local terminal.
const LocalPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Progress is a player's current level in one game.
type Progress struct {
	Player    string
	GameID    string
	Level     int
	UpdatedAt time.Time
}

// Solve records how one attempt at a level ended.
type Solve struct {
	ID        int64
	RunID     string
	Player    string
	GameID    string
	Level     int
	Profile   string
	Pours     int
	Duration  time.Duration
	Outcome   string // "won" or "stuck"
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a player.
type Stats struct {
	Player     string
	Attempts   int
	Won        int
	Stuck      int
	TotalPours int64
	BestLevel  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions write concurrently; one connection serializes them.
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
		CREATE TABLE IF NOT EXISTS progress (
			player TEXT NOT NULL,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, game_id)
		);

		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			profile TEXT NOT NULL,
			pours INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_player ON solves(player, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_solves_level ON solves(game_id, level, pours);
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

// GetProgress returns the player's current level, or 0 if none is stored.
func (s *Store) GetProgress(player, gameID string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT level FROM progress WHERE player = ? AND game_id = ?",
		player, gameID,
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return level, nil
}

// SetProgress stores the player's current level.
func (s *Store) SetProgress(player, gameID string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (player, game_id, level, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player, game_id) DO UPDATE SET level = excluded.level, updated_at = CURRENT_TIMESTAMP`,
		player, gameID, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress deletes the player's stored level for a game.
func (s *Store) ResetProgress(player, gameID string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE player = ? AND game_id = ?", player, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// AllProgress lists every stored progress row ordered by level descending.
func (s *Store) AllProgress() ([]Progress, error) {
	rows, err := s.db.Query(
		`SELECT player, game_id, level, updated_at
		 FROM progress
		 ORDER BY level DESC, player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []Progress
	for rows.Next() {
		var p Progress
		var updatedAt any
		if err := rows.Scan(&p.Player, &p.GameID, &p.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveSolve records a finished attempt. Returns the ID of the inserted record.
func (s *Store) SaveSolve(solve Solve) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO solves (run_id, player, game_id, level, profile, pours, duration_ms, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		solve.RunID,
		solve.Player,
		solve.GameID,
		solve.Level,
		solve.Profile,
		solve.Pours,
		solve.Duration.Milliseconds(),
		solve.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const solveColumns = `id, run_id, player, game_id, level, profile, pours, duration_ms, outcome, created_at`

// RecentSolves returns the player's most recent attempts. An empty player
// returns attempts by everyone.
func (s *Store) RecentSolves(player string, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+solveColumns+`
		 FROM solves
		 WHERE ? = '' OR player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()
	return scanSolves(rows)
}

// BestSolves returns, per level, the won attempt with the fewest pours,
// ordered by level.
func (s *Store) BestSolves(gameID string, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT `+solveColumns+`
		 FROM solves s
		 WHERE game_id = ? AND outcome = 'won'
		   AND id = (
			SELECT id FROM solves b
			WHERE b.game_id = s.game_id AND b.level = s.level AND b.outcome = 'won'
			ORDER BY b.pours ASC, b.duration_ms ASC, b.id ASC
			LIMIT 1
		   )
		 ORDER BY level ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best solves: %w", err)
	}
	defer rows.Close()
	return scanSolves(rows)
}

// ClearSolves deletes all solve records for the player.
func (s *Store) ClearSolves(player string) error {
	_, err := s.db.Exec("DELETE FROM solves WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics for a player.
func (s *Store) GetStats(player string) (*Stats, error) {
	stats := &Stats{Player: player}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(SUM(outcome = 'stuck'), 0),
		        COALESCE(SUM(pours), 0),
		        COALESCE(MAX(CASE WHEN outcome = 'won' THEN level END), 0),
		        MAX(created_at)
		 FROM solves WHERE player = ?`,
		player,
	).Scan(&stats.Attempts, &stats.Won, &stats.Stuck, &stats.TotalPours, &stats.BestLevel, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func scanSolves(rows *sql.Rows) ([]Solve, error) {
	var solves []Solve
	for rows.Next() {
		var sv Solve
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&sv.ID,
			&sv.RunID,
			&sv.Player,
			&sv.GameID,
			&sv.Level,
			&sv.Profile,
			&sv.Pours,
			&durationMs,
			&sv.Outcome,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sv.Duration = time.Duration(durationMs) * time.Millisecond
		sv.CreatedAt = parseTime(createdAt)
		solves = append(solves, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return solves, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
