// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	TutorBubble  lipgloss.Style
	SystemNotice lipgloss.Style
	PendingText  lipgloss.Style

	// ==========================================================================
	// THREAD TAB STYLES
	// ==========================================================================

	ThreadTab       lipgloss.Style
	ThreadTabActive lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar       lipgloss.Style
	ContextOK       lipgloss.Style
	ContextOverflow lipgloss.Style
	Streak          lipgloss.Style
	Subscription    lipgloss.Style
	ShortcutKey     lipgloss.Style
	ShortcutDesc    lipgloss.Style

	// ==========================================================================
	// BANNER STYLES
	// ==========================================================================

	BannerStandard lipgloss.Style
	BannerLevelUp  lipgloss.Style
	BannerFading   lipgloss.Style

	// ==========================================================================
	// PROGRESS AND GAMIFICATION STYLES
	// ==========================================================================

	XPBarFill   lipgloss.Style
	XPBarEmpty  lipgloss.Style
	LevelBadge  lipgloss.Style
	BadgeChip   lipgloss.Style
	StatsLabel  lipgloss.Style
	StatsValue  lipgloss.Style

	// ==========================================================================
	// LIST AND FORM STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDone     lipgloss.Style
	FormLabel        lipgloss.Style
	FormError        lipgloss.Style

	// ==========================================================================
	// VOICE INDICATOR STYLES
	// ==========================================================================

	VoiceOff       lipgloss.Style
	VoiceListening lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(UserBubbleBorder).
		BorderLeft(true).
		PaddingLeft(1).
		MarginLeft(4)

	t.TutorBubble = lipgloss.NewStyle().
		Foreground(TutorBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(TutorBubbleBorder).
		BorderLeft(true).
		PaddingLeft(1)

	t.SystemNotice = lipgloss.NewStyle().
		Foreground(SystemFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(SystemBorder).
		BorderLeft(true).
		PaddingLeft(1).
		Italic(true)

	t.PendingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Thread tabs
	t.ThreadTab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ThreadTabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ContextOK = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ContextOverflow = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Streak = lipgloss.NewStyle().
		Foreground(Amber)

	t.Subscription = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Banners
	t.BannerStandard = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 2)

	t.BannerLevelUp = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)

	t.BannerFading = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)

	// Progress
	t.XPBarFill = lipgloss.NewStyle().
		Foreground(Emerald)

	t.XPBarEmpty = lipgloss.NewStyle().
		Foreground(Overlay)

	t.LevelBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.BadgeChip = lipgloss.NewStyle().
		Foreground(Gold).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Gold).
		Padding(0, 1)

	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatsValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	// Lists and forms
	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.ListItemDone = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true).
		Padding(0, 1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)

	// Voice
	t.VoiceOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.VoiceListening = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Blink(true)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Error box
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// SetSize updates the theme's layout dimensions on window resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Refresh rebuilds every style against the current background setting.
// Called after a config change flips the theme between light and dark.
func (t *Theme) Refresh() {
	t.IsDark = lipgloss.HasDarkBackground()
	t.initStyles()
}
