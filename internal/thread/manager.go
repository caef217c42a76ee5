// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import "sync"

// =============================================================================
// ROLES AND LIMITS
// =============================================================================

// Role identifies who produced a message for counting purposes.
type Role string

const (
	RoleUser   Role = "user"
	RoleTutor  Role = "tutor"
	RoleSystem Role = "system"
)

// ContextLimit is the message count above which the context-overflow
// flag is raised, signaling that older messages may be summarized
// upstream.
const ContextLimit = 10

// =============================================================================
// MANAGER
// =============================================================================

// Manager tracks the active thread id and the per-thread message
// counter. The counter is a derived client value: reset to zero on
// switch, set to historyLength*2 when history loads, incremented per
// observed message afterwards.
type Manager struct {
	mu         sync.Mutex
	current    int
	counter    int
	generation uint64
}

// NewManager creates a manager with no active thread.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active thread id (0 = none).
func (m *Manager) Current() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// HasActive reports whether a thread is selected.
func (m *Manager) HasActive() bool {
	return m.Current() != 0
}

// Generation returns the switch generation. Async results captured
// under an older generation must be discarded on arrival.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// =============================================================================
// SWITCHING
// =============================================================================

// Select makes threadID the active thread. Selecting the already-active
// thread is a no-op and reports false. Otherwise the counter resets to
// zero, the generation advances, and Select reports true so the caller
// can clear displayed messages and request history.
func (m *Manager) Select(threadID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if threadID == m.current {
		return false
	}
	m.current = threadID
	m.counter = 0
	m.generation++
	return true
}

// Reset clears the active thread and counter (used on sign-out).
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = 0
	m.counter = 0
	m.generation++
}

// =============================================================================
// COUNTING
// =============================================================================

// RecordMessage increments the counter for user and tutor messages.
// System messages (errors, notices) do not count toward the context
// limit.
func (m *Manager) RecordMessage(role Role) {
	if role != RoleUser && role != RoleTutor {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
}

// SetHistoryLength sets the counter from loaded history: each history
// record holds one user message and one tutor response.
func (m *Manager) SetHistoryLength(historyLen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter = historyLen * 2
}

// Count returns the current message counter.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

// OverLimit reports whether the counter has crossed the context limit.
// Pure function of the counter: dropping back below the limit clears
// the flag, no hysteresis.
func (m *Manager) OverLimit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter > ContextLimit
}
