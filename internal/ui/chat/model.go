// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/histcache"
	"github.com/jeranaias/studylab-tui/internal/model"
	"github.com/jeranaias/studylab-tui/internal/progress"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/thread"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the conversation view.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	store  *cache.Store
	mirror *histcache.Mirror

	threads *thread.Manager
	tracker *progress.Tracker
	banners *components.Banners
	voice   *voice.Controller

	session session.Session

	threadList []api.Thread
	activeIdx  int

	transcript []model.Message
	// liveLoaded flips when the server history for the active thread
	// arrived; mirror previews are ignored after that.
	liveLoaded bool

	snapshot progress.Snapshot

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer
	markdown bool

	sending     bool
	voiceWarned bool

	keys   KeyMap
	width  int
	height int
}

// Options carries the collaborators the chat view needs. Mirror and
// Voice may be nil.
type Options struct {
	Theme    *styles.Theme
	Client   *api.Client
	Store    *cache.Store
	Mirror   *histcache.Mirror
	Voice    *voice.Controller
	Markdown bool
}

// New creates the chat view.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask your tutor anything..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if opts.Theme != nil {
		sp.Style = opts.Theme.Spinner
	}

	return &Model{
		theme:    opts.Theme,
		client:   opts.Client,
		store:    opts.Store,
		mirror:   opts.Mirror,
		voice:    opts.Voice,
		threads:  thread.NewManager(),
		tracker:  progress.NewTracker(opts.Store),
		banners:  components.NewBanners(),
		input:    ti,
		spin:     sp,
		markdown: opts.Markdown,
		keys:     DefaultKeyMap(),
	}
}

// Init has no work; loading starts when SetSession is called after auth.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSession installs the authenticated session and kicks off the
// post-auth fan-out: the thread list load first (thread selection and
// history follow from its completion), dashboard refresh independent.
func (m *Model) SetSession(s session.Session) tea.Cmd {
	m.session = s
	m.snapshot = progress.Snapshot{XP: s.XP, Level: s.Level, StreakCount: s.StreakCount}
	m.threadList = nil
	m.transcript = nil
	m.threads.Reset()
	return tea.Batch(
		loadThreadsCmd(m.client, s.UserID),
		loadDashboardCmd(m.client, s.UserID),
	)
}

// Session returns the session the view is operating under.
func (m *Model) Session() session.Session {
	return m.session
}

// SetSize resizes the layout. The glamour renderer is rebuilt because
// its word wrap is fixed at construction.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	chromeLines := 7 // header, tabs, banner line, input, xp bar, status bar
	vpHeight := height - chromeLines
	if vpHeight < 3 {
		vpHeight = 3
	}
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(width, vpHeight)
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 6

	if m.markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-8),
		)
		if err == nil {
			m.renderer = r
		}
	}
	m.refreshViewport()
}

// ActiveThread returns the thread the view considers current, or nil.
func (m *Model) ActiveThread() *api.Thread {
	if m.activeIdx < 0 || m.activeIdx >= len(m.threadList) {
		return nil
	}
	return &m.threadList[m.activeIdx]
}

// OverLimit reports whether the active thread exceeds the context window.
func (m *Model) OverLimit() bool {
	return m.threads.OverLimit()
}
