// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/studylab-tui/internal/util"
)

// =============================================================================
// PERSISTED STATE
// =============================================================================

// State is the on-disk shape of the client's persisted state.
type State struct {
	// Session identity. UserID == 0 means no stored session.
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`

	// Session-scoped UI state.
	ActiveThreadID int `json:"active_thread_id,omitempty"`

	// Gamification mirrors. LastKnownLevel drives level-up detection.
	XP             int `json:"xp"`
	Level          int `json:"level"`
	StreakCount    int `json:"streak_count"`
	LastKnownLevel int `json:"last_known_level"`

	// Cross-session preferences.
	Theme            string `json:"theme,omitempty"`
	MaterialSubject  string `json:"material_subject,omitempty"`
	MaterialCategory string `json:"material_category,omitempty"`
}

// =============================================================================
// STORE
// =============================================================================

// Store provides typed access to the persisted state file. All mutating
// methods write through to disk immediately.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the state file from the default location (~/.studylab/state.json).
func Open() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(homeDir, ".studylab", "state.json"))
}

// OpenPath loads the state file from a custom location. A missing or
// unparseable file yields an empty state.
func OpenPath(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// Corrupted state file: start fresh rather than failing startup.
		s.state = State{}
	}
	return s, nil
}

// save writes the current state to disk. Callers must hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}

// =============================================================================
// SESSION IDENTITY
// =============================================================================

// Session returns the stored session identity. UserID 0 means none.
func (s *Store) Session() (userID int, username, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserID, s.state.Username, s.state.Role
}

// SetSession stores the session identity.
func (s *Store) SetSession(userID int, username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserID = userID
	s.state.Username = username
	s.state.Role = role
	return s.save()
}

// ClearSession removes the session identity and session-scoped state
// (active thread, progress mirrors). Preferences like theme and the
// material cursor survive sign-out.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserID = 0
	s.state.Username = ""
	s.state.Role = ""
	s.state.ActiveThreadID = 0
	s.state.XP = 0
	s.state.Level = 0
	s.state.StreakCount = 0
	s.state.LastKnownLevel = 0
	return s.save()
}

// =============================================================================
// THREAD STATE
// =============================================================================

// ActiveThread returns the persisted active thread id (0 = none).
func (s *Store) ActiveThread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveThreadID
}

// SetActiveThread persists the active thread id.
func (s *Store) SetActiveThread(threadID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveThreadID = threadID
	return s.save()
}

// =============================================================================
// PROGRESS MIRRORS
// =============================================================================

// Progress returns the stored xp/level/streak mirrors.
func (s *Store) Progress() (xp, level, streak int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.XP, s.state.Level, s.state.StreakCount
}

// SetProgress stores the xp/level/streak mirrors.
func (s *Store) SetProgress(xp, level, streak int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.XP = xp
	s.state.Level = level
	s.state.StreakCount = streak
	return s.save()
}

// LastKnownLevel returns the level recorded by the previous observation.
func (s *Store) LastKnownLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastKnownLevel
}

// SetLastKnownLevel records the most recently observed level.
func (s *Store) SetLastKnownLevel(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastKnownLevel = level
	return s.save()
}

// =============================================================================
// PREFERENCES
// =============================================================================

// Theme returns the stored theme name ("" = default).
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	return s.save()
}

// MaterialCursor returns the persisted subject/category selection.
func (s *Store) MaterialCursor() (subject, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.MaterialSubject, s.state.MaterialCategory
}

// SetMaterialCursor persists the subject/category selection. Changing
// subject invalidates the category, so callers pass both together.
func (s *Store) SetMaterialCursor(subject, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MaterialSubject = subject
	s.state.MaterialCategory = category
	return s.save()
}
