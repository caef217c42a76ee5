// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache persists small client state across restarts: the session
// identity, the active thread, the last-known gamification level, the
// theme, and the material browser cursor. State lives in a single JSON
// file written atomically; a missing or corrupted file is treated as
// empty state, never an error.
package cache
