// Package storage keeps the scoreboard of one arcade process.
// It uses the pure-Go modernc.org/sqlite driver with an in-memory database,
// so scores live exactly as long as the process does.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer names scores recorded without a player, such as local play.
const DefaultPlayer = "player"

// Store manages the SQLite connection holding the session scoreboard.
// It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry represents a single scoreboard record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Level     int
	Won       bool
	CreatedAt time.Time
}

// GameStats summarizes every finished game of one kind.
type GameStats struct {
	GameID  string
	Plays   int
	Best    int
	Average float64
	Wins    int
}

// Open creates an empty in-memory scoreboard.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so pin the
	// pool to a single connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database. The scoreboard is gone afterwards.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished game and returns the ID of the new record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.GameID == "" {
		return 0, fmt.Errorf("storage: cannot save score: empty game id")
	}
	if e.Player == "" {
		e.Player = DefaultPlayer
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = s.now()
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, level, won, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.GameID, e.Player, e.Score, e.Level, boolInt(e.Won), created.UnixNano(),
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

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// TopScores retrieves the best scores for the given game, highest first.
// Equal scores keep the order they were achieved in.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, level, won, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// RecentScores retrieves the latest finished games across all games.
func (s *Store) RecentScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, level, won, created_at
		 FROM scores
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Level, &e.Won, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats summarizes every game that has at least one score, ordered by id.
func (s *Store) Stats() ([]GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(won)
		 FROM scores
		 GROUP BY game_id
		 ORDER BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []GameStats
	for rows.Next() {
		var st GameStats
		if err := rows.Scan(&st.GameID, &st.Plays, &st.Best, &st.Average, &st.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
