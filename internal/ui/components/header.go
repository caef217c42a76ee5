// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// RenderHeader renders the top bar with the app title and the active view.
func RenderHeader(theme *styles.Theme, viewName string, width int) string {
	title := theme.HeaderTitle.Render("StudyLab")
	sub := theme.HeaderSubtitle.Render(viewName)

	line := title + "  " + sub
	pad := width - lipgloss.Width(line) - 2
	if pad < 0 {
		pad = 0
	}
	return theme.Header.Width(width).Render(line + strings.Repeat(" ", pad))
}

// RenderThreadTabs renders the thread strip, highlighting the active thread.
func RenderThreadTabs(theme *styles.Theme, titles []string, activeIdx, width int) string {
	if len(titles) == 0 {
		return theme.ShortcutDesc.Render("no threads yet")
	}

	tabs := make([]string, 0, len(titles))
	perTab := width/len(titles) - 2
	if perTab < 6 {
		perTab = 6
	}
	for i, title := range titles {
		label := TruncateLabel(title, perTab)
		if i == activeIdx {
			tabs = append(tabs, theme.ThreadTabActive.Render(label))
		} else {
			tabs = append(tabs, theme.ThreadTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
