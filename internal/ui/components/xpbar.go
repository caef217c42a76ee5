// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/studylab-tui/internal/progress"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// RenderXPBar renders the experience bar toward the next level, like
// "Lv 2 [#####.....] 175 XP". width is the total column budget.
func RenderXPBar(theme *styles.Theme, snap progress.Snapshot, width int) string {
	label := theme.LevelBadge.Render(fmt.Sprintf("Lv %d", snap.Level))
	suffix := theme.StatsLabel.Render(fmt.Sprintf(" %d XP", snap.XP))

	barWidth := width - len(fmt.Sprintf("Lv %d", snap.Level)) - len(fmt.Sprintf(" %d XP", snap.XP)) - 5
	if barWidth < 4 {
		barWidth = 4
	}

	frac := progress.Fraction(snap.XP, snap.Level)
	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := theme.XPBarFill.Render(strings.Repeat("#", filled)) +
		theme.XPBarEmpty.Render(strings.Repeat(".", barWidth-filled))

	return label + " [" + bar + "]" + suffix
}
