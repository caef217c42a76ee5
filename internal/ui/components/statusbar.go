// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

// StatusBarData is everything the status bar displays.
type StatusBarData struct {
	Username     string
	Subscription string
	Level        int
	StreakDays   int
	MessageCount int
	OverLimit    bool
	VoiceState   voice.State
	Width        int
}

// RenderStatusBar renders the bottom status line: identity and progress on
// the left, context and voice state on the right.
func RenderStatusBar(theme *styles.Theme, data StatusBarData) string {
	var left strings.Builder

	left.WriteString(data.Username)
	if strings.EqualFold(data.Subscription, "premium") {
		left.WriteString(" ")
		left.WriteString(theme.Subscription.Render("PRO"))
	}
	left.WriteString("  ")
	left.WriteString(theme.LevelBadge.Render(fmt.Sprintf("Lv %d", data.Level)))
	if data.StreakDays > 0 {
		left.WriteString("  ")
		left.WriteString(theme.Streak.Render(fmt.Sprintf("%d day streak", data.StreakDays)))
	}

	var right strings.Builder
	if data.OverLimit {
		right.WriteString(theme.ContextOverflow.Render(
			fmt.Sprintf("%s context full (%d msgs)", styles.StatusIndicators.Warning, data.MessageCount)))
	} else {
		right.WriteString(theme.ContextOK.Render(fmt.Sprintf("%d msgs", data.MessageCount)))
	}
	right.WriteString("  ")
	switch data.VoiceState {
	case voice.Listening:
		right.WriteString(theme.VoiceListening.Render("(( mic ))"))
	default:
		right.WriteString(theme.VoiceOff.Render("mic off"))
	}

	leftStr := left.String()
	rightStr := right.String()

	gap := data.Width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.StatusBar.Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}

// TruncateLabel shortens a label to fit width columns, accounting for
// wide runes, appending "..." when cut.
func TruncateLabel(label string, width int) string {
	if runewidth.StringWidth(label) <= width {
		return label
	}
	if width <= 3 {
		return runewidth.Truncate(label, width, "")
	}
	return runewidth.Truncate(label, width, "...")
}
