// Package storage provides SQLite-based persistence for scores and stats.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/greedycat/internal/game"
)

// statsKey is the kv row holding the msgpack-encoded aggregate stats.
const statsKey = "stats"

// Store manages the SQLite database connection. It implements
// game.Persistence.
type Store struct {
	db *sql.DB
}

var _ game.Persistence = (*Store)(nil)

// ScoreEntry represents one finished session in the score history.
type ScoreEntry struct {
	ID        int64
	Mode      game.Mode
	Score     int
	Outcome   game.Outcome
	Length    int
	FoodEaten int
	Ticks     uint64
	CreatedAt time.Time
}

// ModeStats contains aggregated history for a mode.
type ModeStats struct {
	Mode       game.Mode
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer; SSH sessions share the handle.
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			length INTEGER NOT NULL DEFAULT 0,
			food_eaten INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS high_scores (
			mode TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
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

// SaveResult appends a finished session to the score history.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r game.SessionResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (mode, score, outcome, length, food_eaten, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(r.Mode), r.Score, string(r.Outcome), r.Length, r.FoodEaten, int64(r.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N sessions for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode game.Mode, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, outcome, length, food_eaten, ticks, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var modeName, outcome string
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &modeName, &e.Score, &outcome, &e.Length, &e.FoodEaten, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Mode = game.Mode(modeName)
		e.Outcome = game.Outcome(outcome)
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the history and high score of the given mode.
func (s *Store) ClearScores(mode game.Mode) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", string(mode)); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM high_scores WHERE mode = ?", string(mode)); err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	return nil
}

// LoadHighScore returns the best score for the mode, 0 if none.
func (s *Store) LoadHighScore(mode game.Mode) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM high_scores WHERE mode = ?", string(mode)).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SaveHighScore stores score as the best for the mode unless a higher one
// is already stored.
func (s *Store) SaveHighScore(mode game.Mode, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (mode, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(mode) DO UPDATE SET
		   score = MAX(high_scores.score, excluded.score),
		   updated_at = CASE WHEN excluded.score > high_scores.score
		     THEN excluded.updated_at ELSE high_scores.updated_at END`,
		string(mode), score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// LoadStats decodes the aggregate stats. A fresh database yields zero stats.
func (s *Store) LoadStats() (game.Stats, error) {
	return loadStats(s.db)
}

func loadStats(q queryRower) (game.Stats, error) {
	var blob []byte
	err := q.QueryRow("SELECT value FROM kv WHERE key = ?", statsKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Stats{}, nil
	}
	if err != nil {
		return game.Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	var stats game.Stats
	if err := msgpack.Unmarshal(blob, &stats); err != nil {
		return game.Stats{}, fmt.Errorf("storage: cannot decode stats: %w", err)
	}
	return stats, nil
}

// SaveStats encodes and stores the aggregate stats.
func (s *Store) SaveStats(stats game.Stats) error {
	return saveStats(s.db, stats)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveStats(x execer, stats game.Stats) error {
	blob, err := msgpack.Marshal(stats)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stats: %w", err)
	}
	_, err = x.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		statsKey, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// UpdateStats loads, modifies and saves the stats in one transaction so
// sessions finishing together do not overwrite each other's counts. A
// stats row that cannot be read or decoded is left untouched.
func (s *Store) UpdateStats(fn func(*game.Stats)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stats, err := loadStats(tx)
	if err != nil {
		return err
	}
	fn(&stats)
	if err := saveStats(tx, stats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// ModeStatsFor retrieves aggregated history for a specific mode.
func (s *Store) ModeStatsFor(mode game.Mode) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE mode = ?`,
		string(mode),
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE mode = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		string(mode),
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllModeStats retrieves history aggregates for every mode that has been played.
func (s *Store) AllModeStats() (map[game.Mode]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[game.Mode]*ModeStats)
	for rows.Next() {
		var ms ModeStats
		var modeName string
		var lastPlayed any
		if err := rows.Scan(&modeName, &ms.GamesCount, &ms.HighScore, &ms.AvgScore, &ms.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.Mode = game.Mode(modeName)
		ms.LastPlayed = parseTime(lastPlayed)
		stats[ms.Mode] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
