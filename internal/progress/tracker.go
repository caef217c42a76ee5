// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package progress

// =============================================================================
// XP THRESHOLD TABLE
// =============================================================================

// Thresholds maps level index to the minimum XP required to reach that
// level. Must be strictly increasing with a defined value for level 0.
// Mirrors the server's leveling table; levels past the last index reuse
// the final threshold, so the bar stays flat.
var Thresholds = []int{0, 100, 250, 500, 1000, 2000}

// Snapshot is the server-reported progress state. Read-only to the
// client; only LastKnownLevel (persisted separately) is client-owned.
type Snapshot struct {
	XP          int
	Level       int
	StreakCount int
}

// =============================================================================
// FRACTION
// =============================================================================

// Fraction returns how far xp has progressed through the given level as
// a value in [0, 1]. Past the end of the threshold table floor and
// ceiling collapse to the last entry and the fraction is 0.
func Fraction(xp, level int) float64 {
	if level < 0 {
		level = 0
	}

	last := len(Thresholds) - 1

	floor := 0
	if level <= last {
		floor = Thresholds[level]
	} else {
		floor = Thresholds[last]
	}

	ceil := Thresholds[last]
	if level+1 <= last {
		ceil = Thresholds[level+1]
	}

	if ceil <= floor {
		return 0
	}

	f := float64(xp-floor) / float64(ceil-floor)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// =============================================================================
// LEVEL-UP TRACKER
// =============================================================================

// LevelStore is the slice of the persistent cache the tracker needs.
type LevelStore interface {
	LastKnownLevel() int
	SetLastKnownLevel(level int) error
}

// Tracker detects level transitions across observed snapshots.
type Tracker struct {
	store LevelStore
}

// NewTracker creates a tracker backed by the given store.
func NewTracker(store LevelStore) *Tracker {
	return &Tracker{store: store}
}

// Observe compares a snapshot's level against the last persisted level
// and reports whether a level-up occurred. The new level is persisted
// unconditionally after the comparison, so a repeated snapshot at the
// same level never reports a second level-up.
func (t *Tracker) Observe(snap Snapshot) (leveledUp bool) {
	leveledUp = snap.Level > t.store.LastKnownLevel()
	// Persist after comparing, whether or not a level-up fired, so the
	// stored value always tracks the latest observed snapshot.
	t.store.SetLastKnownLevel(snap.Level)
	return leveledUp
}
