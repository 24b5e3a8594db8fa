// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pocket-tanks/internal/config"
	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// RecordingEntry is a stored session plus its row metadata.
type RecordingEntry struct {
	ID        int64
	CreatedAt time.Time
	core.Recording
}

// GameStats summarizes the stored sessions of one game.
type GameStats struct {
	GameID     string
	Sessions   int
	TotalTicks int64
	BestScore  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			setup TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			inputs TEXT NOT NULL,
			final TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_game_id ON recordings(game_id);
		CREATE INDEX IF NOT EXISTS idx_recordings_recent ON recordings(game_id, id DESC);
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

// SaveRecording stores a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRecording(rec core.Recording) (int64, error) {
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO recordings (game_id, player, setup, ticks, score, inputs, final)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Player, rec.Setup, int64(rec.Ticks), rec.Score, string(inputs), rec.Final,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const recordingColumns = `id, game_id, player, setup, ticks, score, inputs, final, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecording(row rowScanner) (RecordingEntry, error) {
	var (
		e         RecordingEntry
		ticks     int64
		inputs    string
		createdAt any
	)
	if err := row.Scan(&e.ID, &e.GameID, &e.Player, &e.Setup, &ticks, &e.Score, &inputs, &e.Final, &createdAt); err != nil {
		return e, err
	}
	e.Ticks = uint64(ticks)
	if err := json.Unmarshal([]byte(inputs), &e.Inputs); err != nil {
		return e, fmt.Errorf("storage: recording %d has corrupt inputs: %w", e.ID, err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
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

// RecentRecordings retrieves the newest N recordings for the given game.
func (s *Store) RecentRecordings(gameID string, limit int) ([]RecordingEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+recordingColumns+`
		 FROM recordings
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var entries []RecordingEntry
	for rows.Next() {
		e, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecordingByID retrieves one recording. Returns ErrNotFound if it is missing.
func (s *Store) RecordingByID(id int64) (RecordingEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+recordingColumns+` FROM recordings WHERE id = ?`,
		id,
	)
	e, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RecordingEntry{}, ErrNotFound
	}
	if err != nil {
		return RecordingEntry{}, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return e, nil
}

// DeleteRecording removes one recording.
func (s *Store) DeleteRecording(id int64) error {
	res, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearRecordings deletes all recordings for the given game.
func (s *Store) ClearRecordings(gameID string) error {
	_, err := s.db.Exec("DELETE FROM recordings WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear recordings: %w", err)
	}
	return nil
}

// Stats returns aggregate statistics for a game. A game with no
// recordings yields zero values.
func (s *Store) Stats(gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var (
		total, best sql.NullInt64
		last        sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(ticks), MAX(score), MAX(created_at)
		 FROM recordings
		 WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Sessions, &total, &best, &last)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if total.Valid {
		stats.TotalTicks = total.Int64
	}
	if best.Valid {
		stats.BestScore = int(best.Int64)
	}
	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}
	return stats, nil
}
