// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// =============================================================================
// BANNER TYPES
// =============================================================================

// BannerKind selects which banner slot a notification occupies.
// Each kind has at most one visible banner at a time.
type BannerKind int

const (
	// BannerStandard is a transient notice (XP gained, goal completed, errors).
	BannerStandard BannerKind = iota
	// BannerLevelUp is the level-up celebration with a fade-out phase.
	BannerLevelUp
)

// Display timings. The level-up banner dims briefly before it hides.
const (
	StandardHideAfter = 4 * time.Second
	LevelUpFadeAfter  = 4500 * time.Millisecond
	LevelUpHideAfter  = 5 * time.Second
)

// =============================================================================
// BANNER MESSAGES
// =============================================================================

// BannerFadeMsg dims the level-up banner. Ignored if Owner or Seq is
// stale.
type BannerFadeMsg struct {
	Owner uint64
	Kind  BannerKind
	Seq   uint64
}

// BannerHideMsg removes a banner. Ignored if Owner or Seq is stale.
type BannerHideMsg struct {
	Owner uint64
	Kind  BannerKind
	Seq   uint64
}

// =============================================================================
// BANNER SCHEDULER
// =============================================================================

// slot is the visible state of one banner kind.
type slot struct {
	text    string
	visible bool
	fading  bool
	seq     uint64
}

// Banners schedules transient notifications. Showing a banner of a kind
// replaces that kind's current banner and restarts its hide timer. Each
// Show advances a per-kind sequence number; timer messages carrying an
// older sequence are ignored, so a replaced banner never inherits the
// previous banner's expiry. Each instance tags its timer messages with
// an owner id so views never consume each other's timers.
type Banners struct {
	id    uint64
	slots [2]slot
}

var bannerOwnerSeq atomic.Uint64

// NewBanners creates an empty banner scheduler.
func NewBanners() *Banners {
	return &Banners{id: bannerOwnerSeq.Add(1)}
}

// Show displays text in the given kind's slot and returns the commands
// that will fade and hide it on schedule.
func (b *Banners) Show(kind BannerKind, text string) tea.Cmd {
	s := &b.slots[kind]
	s.seq++
	s.text = text
	s.visible = true
	s.fading = false
	seq := s.seq

	owner := b.id
	if kind == BannerLevelUp {
		return tea.Batch(
			tea.Tick(LevelUpFadeAfter, func(time.Time) tea.Msg {
				return BannerFadeMsg{Owner: owner, Kind: kind, Seq: seq}
			}),
			tea.Tick(LevelUpHideAfter, func(time.Time) tea.Msg {
				return BannerHideMsg{Owner: owner, Kind: kind, Seq: seq}
			}),
		)
	}
	return tea.Tick(StandardHideAfter, func(time.Time) tea.Msg {
		return BannerHideMsg{Owner: owner, Kind: kind, Seq: seq}
	})
}

// Update handles banner timer messages. Messages for another instance
// or with a stale sequence are dropped.
func (b *Banners) Update(msg tea.Msg) {
	switch m := msg.(type) {
	case BannerFadeMsg:
		if m.Owner != b.id {
			return
		}
		s := &b.slots[m.Kind]
		if m.Seq == s.seq && s.visible {
			s.fading = true
		}
	case BannerHideMsg:
		if m.Owner != b.id {
			return
		}
		s := &b.slots[m.Kind]
		if m.Seq == s.seq {
			s.visible = false
			s.fading = false
			s.text = ""
		}
	}
}

// Hide removes a banner immediately without waiting for its timer.
func (b *Banners) Hide(kind BannerKind) {
	s := &b.slots[kind]
	s.seq++
	s.visible = false
	s.fading = false
	s.text = ""
}

// Visible reports whether the given kind currently shows a banner.
func (b *Banners) Visible(kind BannerKind) bool {
	return b.slots[kind].visible
}

// Text returns the current banner text for a kind, or "" when hidden.
func (b *Banners) Text(kind BannerKind) string {
	s := b.slots[kind]
	if !s.visible {
		return ""
	}
	return s.text
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the visible banners, level-up first, one per line.
func (b *Banners) View(theme *styles.Theme) string {
	var out string

	if s := b.slots[BannerLevelUp]; s.visible {
		style := theme.BannerLevelUp
		if s.fading {
			style = theme.BannerFading
		}
		out += style.Render(s.text)
	}

	if s := b.slots[BannerStandard]; s.visible {
		if out != "" {
			out += "\n"
		}
		out += theme.BannerStandard.Render(s.text)
	}

	return out
}
