// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package progress converts server-reported XP, level and streak counters
// into display state: a progress-bar fraction against the XP threshold
// table, and level-up detection against the last level persisted locally.
package progress
