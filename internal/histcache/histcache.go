// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package histcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/studylab-tui/internal/api"
)

// =============================================================================
// ERRORS
// =============================================================================

var ErrClosed = errors.New("history mirror closed")

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL,
	thread_id  INTEGER NOT NULL,
	prompt     TEXT NOT NULL,
	reply      TEXT NOT NULL,
	timestamp  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exchanges_thread
	ON exchanges (user_id, thread_id, id);
`

// =============================================================================
// MIRROR
// =============================================================================

// Mirror is a local read-through copy of per-thread conversation history.
type Mirror struct {
	db *sql.DB
}

// DefaultPath returns the mirror database path under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".studylab", "history.db"), nil
}

// Open opens or creates the mirror database at path.
func Open(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Mirror{db: db}, nil
}

// Close releases the underlying database.
func (m *Mirror) Close() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Replace swaps the mirrored rows for one thread with a fresh server copy.
func (m *Mirror) Replace(ctx context.Context, userID, threadID int, items []api.HistoryItem) error {
	if m.db == nil {
		return ErrClosed
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM exchanges WHERE user_id = ? AND thread_id = ?",
		userID, threadID,
	); err != nil {
		return fmt.Errorf("failed to clear thread: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exchanges (user_id, thread_id, prompt, reply, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`, userID, threadID, item.Message, item.Response, item.Timestamp); err != nil {
			return fmt.Errorf("failed to insert exchange: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Append records one completed exchange without touching earlier rows.
func (m *Mirror) Append(ctx context.Context, userID, threadID int, item api.HistoryItem) error {
	if m.db == nil {
		return ErrClosed
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO exchanges (user_id, thread_id, prompt, reply, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, userID, threadID, item.Message, item.Response, item.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append exchange: %w", err)
	}
	return nil
}

// Load returns the mirrored history for one thread, oldest first.
func (m *Mirror) Load(ctx context.Context, userID, threadID int) ([]api.HistoryItem, error) {
	if m.db == nil {
		return nil, ErrClosed
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT prompt, reply, timestamp
		FROM exchanges
		WHERE user_id = ? AND thread_id = ?
		ORDER BY id
	`, userID, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread: %w", err)
	}
	defer rows.Close()

	var items []api.HistoryItem
	for rows.Next() {
		var item api.HistoryItem
		if err := rows.Scan(&item.Message, &item.Response, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Purge deletes every mirrored row for a user. Called on sign-out.
func (m *Mirror) Purge(ctx context.Context, userID int) error {
	if m.db == nil {
		return ErrClosed
	}

	_, err := m.db.ExecContext(ctx,
		"DELETE FROM exchanges WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to purge user: %w", err)
	}
	return nil
}
