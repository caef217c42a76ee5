// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection for studylab CLI modes.

package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if stdin is a terminal. The REPL refuses to run
// against a pipe.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsOutputTTY returns true if stdout is a terminal.
func IsOutputTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, or the fallback when stdout
// is not a terminal.
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
