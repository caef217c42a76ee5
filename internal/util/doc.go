// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the studylab TUI:
// atomic file writes, integer formatting, and rune-safe truncation.
package util
