// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/studylab-tui/internal/progress"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

func TestRenderStatusBar_OverflowFlag(t *testing.T) {
	theme := styles.NewTheme()

	bar := RenderStatusBar(theme, StatusBarData{
		Username:     "maria",
		MessageCount: 12,
		OverLimit:    true,
		Width:        80,
	})
	if !strings.Contains(bar, "context full") {
		t.Error("overflow flag not rendered")
	}

	bar = RenderStatusBar(theme, StatusBarData{
		Username:     "maria",
		MessageCount: 8,
		OverLimit:    false,
		Width:        80,
	})
	if strings.Contains(bar, "context full") {
		t.Error("overflow flag rendered while under limit")
	}
}

func TestRenderStatusBar_VoiceStates(t *testing.T) {
	theme := styles.NewTheme()

	bar := RenderStatusBar(theme, StatusBarData{Username: "sam", VoiceState: voice.Listening, Width: 80})
	if !strings.Contains(bar, "mic") {
		t.Error("voice indicator missing")
	}

	bar = RenderStatusBar(theme, StatusBarData{Username: "sam", VoiceState: voice.Off, Width: 80})
	if !strings.Contains(bar, "mic off") {
		t.Error("voice off indicator missing")
	}
}

func TestRenderStatusBar_PremiumTag(t *testing.T) {
	theme := styles.NewTheme()

	bar := RenderStatusBar(theme, StatusBarData{Username: "sam", Subscription: "premium", Width: 80})
	if !strings.Contains(bar, "PRO") {
		t.Error("premium tag missing")
	}

	bar = RenderStatusBar(theme, StatusBarData{Username: "sam", Subscription: "free", Width: 80})
	if strings.Contains(bar, "PRO") {
		t.Error("premium tag rendered for free tier")
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("Algebra", 10); got != "Algebra" {
		t.Errorf("short label changed: %q", got)
	}
	got := TruncateLabel("World History Review", 10)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated label missing ellipsis: %q", got)
	}
}

func TestRenderXPBar_ContainsLevelAndXP(t *testing.T) {
	theme := styles.NewTheme()

	bar := RenderXPBar(theme, progress.Snapshot{XP: 175, Level: 2}, 50)
	if !strings.Contains(bar, "Lv 2") {
		t.Errorf("level missing from bar: %q", bar)
	}
	if !strings.Contains(bar, "175 XP") {
		t.Errorf("xp missing from bar: %q", bar)
	}
	if !strings.Contains(bar, "#") {
		t.Error("mid-level bar should show some fill")
	}
}
