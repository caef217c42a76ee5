// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the StudyLab TUI:
// the notification banner scheduler, the status bar, the XP progress bar,
// and the application header.
package components
