// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import "testing"

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelect_Idempotent(t *testing.T) {
	m := NewManager()

	if !m.Select(3) {
		t.Fatal("first Select(3) should report a switch")
	}
	gen := m.Generation()

	if m.Select(3) {
		t.Error("Select of the already-active thread must be a no-op")
	}
	if m.Generation() != gen {
		t.Error("no-op Select must not advance the generation")
	}
}

func TestSelect_ResetsCounter(t *testing.T) {
	m := NewManager()
	m.Select(1)
	m.SetHistoryLength(4)
	if m.Count() != 8 {
		t.Fatalf("Count = %d, want 8", m.Count())
	}

	m.Select(2)
	if m.Count() != 0 {
		t.Errorf("Count after switch = %d, want 0", m.Count())
	}
	if m.OverLimit() {
		t.Error("overflow flag must clear on switch")
	}
}

func TestSelect_AdvancesGeneration(t *testing.T) {
	m := NewManager()
	m.Select(1)
	g1 := m.Generation()
	m.Select(2)
	if m.Generation() == g1 {
		t.Error("switching threads must advance the generation")
	}
}

func TestHasActive(t *testing.T) {
	m := NewManager()
	if m.HasActive() {
		t.Error("fresh manager should have no active thread")
	}
	m.Select(5)
	if !m.HasActive() {
		t.Error("thread 5 should be active")
	}
	m.Reset()
	if m.HasActive() {
		t.Error("Reset should clear the active thread")
	}
}

// =============================================================================
// COUNTER TESTS
// =============================================================================

func TestRecordMessage_Roles(t *testing.T) {
	m := NewManager()
	m.Select(1)

	m.RecordMessage(RoleUser)
	m.RecordMessage(RoleTutor)
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}

	// System messages never count.
	m.RecordMessage(RoleSystem)
	m.RecordMessage(Role("other"))
	if m.Count() != 2 {
		t.Errorf("Count after system messages = %d, want 2", m.Count())
	}
}

func TestSetHistoryLength(t *testing.T) {
	m := NewManager()
	m.Select(1)
	m.SetHistoryLength(5)
	if m.Count() != 10 {
		t.Errorf("Count = %d, want 10", m.Count())
	}
}

// =============================================================================
// OVERFLOW FLAG TESTS
// =============================================================================

func TestOverLimit_Threshold(t *testing.T) {
	m := NewManager()
	m.Select(1)

	m.SetHistoryLength(5) // counter = 10
	if m.OverLimit() {
		t.Error("counter == limit must not overflow (strictly greater)")
	}

	m.RecordMessage(RoleUser) // counter = 11
	if !m.OverLimit() {
		t.Error("counter 11 should overflow")
	}
}

func TestOverLimit_NoHysteresis(t *testing.T) {
	m := NewManager()
	m.Select(1)
	m.SetHistoryLength(6) // counter = 12
	if !m.OverLimit() {
		t.Fatal("counter 12 should overflow")
	}

	// A summarization upstream shrinks the history; the flag clears.
	m.SetHistoryLength(2)
	if m.OverLimit() {
		t.Error("flag must clear when the counter drops below the limit")
	}
}

func TestHistoryThenIncrements(t *testing.T) {
	// Switching resets to 0 before history arrives; history of length N
	// produces 2N; each exchange afterwards adds 2.
	m := NewManager()
	m.Select(9)
	if m.Count() != 0 {
		t.Fatal("counter must be 0 before history arrives")
	}

	m.SetHistoryLength(4)
	m.RecordMessage(RoleUser)
	m.RecordMessage(RoleTutor)
	if m.Count() != 10 {
		t.Errorf("Count = %d, want 10", m.Count())
	}
	if m.OverLimit() {
		t.Error("10 messages is not over the limit")
	}

	m.RecordMessage(RoleUser)
	m.RecordMessage(RoleTutor)
	if !m.OverLimit() {
		t.Error("12 messages should be over the limit")
	}
}
