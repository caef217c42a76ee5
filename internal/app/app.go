// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app composes the views into the root Bubble Tea model. It owns
// the Session value, routes messages to the active view, and runs the
// session restore on startup.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/config"
	"github.com/jeranaias/studylab-tui/internal/histcache"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/ui/chat"
	"github.com/jeranaias/studylab-tui/internal/ui/goals"
	"github.com/jeranaias/studylab-tui/internal/ui/login"
	"github.com/jeranaias/studylab-tui/internal/ui/materials"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

// =============================================================================
// VIEWS
// =============================================================================

// View identifies the screen currently shown.
type View int

const (
	ViewLogin View = iota
	ViewChat
	ViewGoals
	ViewMaterials
)

// =============================================================================
// MESSAGES
// =============================================================================

// RestoredMsg reports the result of the startup session restore. An
// unauthenticated session is not an error; the login view is shown.
type RestoredMsg struct {
	Session session.Session
}

// ConfigChangedMsg delivers a live-reloaded configuration.
type ConfigChangedMsg struct {
	Config *config.Config
}

// =============================================================================
// APP MODEL
// =============================================================================

// Options carries everything the root model composes. Mirror, Voice, and
// Watcher may be nil.
type Options struct {
	Theme   *styles.Theme
	Config  *config.Config
	Client  *api.Client
	Store   *cache.Store
	Mirror  *histcache.Mirror
	Boot    *session.Bootstrapper
	Voice   *voice.Controller
	Watcher *config.Watcher
}

// App is the root model.
type App struct {
	theme   *styles.Theme
	cfg     *config.Config
	client  *api.Client
	store   *cache.Store
	mirror  *histcache.Mirror
	boot    *session.Bootstrapper
	voice   *voice.Controller
	watcher *config.Watcher

	login     *login.Model
	chat      *chat.Model
	goals     *goals.Model
	materials *materials.Model

	view   View
	width  int
	height int
}

// New creates the root model and its views.
func New(opts Options) *App {
	return &App{
		theme:   opts.Theme,
		cfg:     opts.Config,
		client:  opts.Client,
		store:   opts.Store,
		mirror:  opts.Mirror,
		boot:    opts.Boot,
		voice:   opts.Voice,
		watcher: opts.Watcher,
		login:   login.New(opts.Theme, opts.Boot),
		chat: chat.New(chat.Options{
			Theme:    opts.Theme,
			Client:   opts.Client,
			Store:    opts.Store,
			Mirror:   opts.Mirror,
			Voice:    opts.Voice,
			Markdown: opts.Config.UI.MarkdownReplies,
		}),
		goals:     goals.New(opts.Theme, opts.Client),
		materials: materials.New(opts.Theme, opts.Client, opts.Store),
		view:      ViewLogin,
	}
}

// Init kicks off the session restore; everything else waits for it.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.login.Init(), a.restoreCmd()}
	if a.watcher != nil {
		cmds = append(cmds, a.watchConfigCmd())
	}
	return tea.Batch(cmds...)
}

// restoreCmd validates the cached session against the server. It never
// fails; an invalid session comes back unauthenticated.
func (a *App) restoreCmd() tea.Cmd {
	boot := a.boot
	return func() tea.Msg {
		return RestoredMsg{Session: boot.Restore(context.Background())}
	}
}

func (a *App) watchConfigCmd() tea.Cmd {
	ch := a.watcher.Changes()
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Config: cfg}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		a.chat.SetSize(msg.Width, msg.Height)
		a.goals.SetSize(msg.Width, msg.Height)
		a.materials.SetSize(msg.Width, msg.Height)
		return a, nil

	case RestoredMsg:
		if !msg.Session.Authenticated() {
			a.view = ViewLogin
			return a, nil
		}
		return a, a.enterChat(msg.Session)

	case login.AuthedMsg:
		// The form clears its spinner and shows inline errors itself.
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.Err == nil && msg.Session.Authenticated() {
			return a, tea.Batch(cmd, a.enterChat(msg.Session))
		}
		return a, cmd

	case chat.SignOutMsg:
		return a, a.signOut()

	case chat.ShowGoalsMsg:
		a.view = ViewGoals
		return a, a.goals.SetUser(a.chat.Session().UserID)

	case chat.ShowMaterialsMsg:
		a.view = ViewMaterials
		return a, a.materials.Open()

	case goals.BackMsg:
		a.view = ViewChat
		return a, nil

	case materials.BackMsg:
		a.view = ViewChat
		return a, nil

	case ConfigChangedMsg:
		a.applyConfig(msg.Config)
		if a.watcher == nil {
			return a, nil
		}
		return a, a.watchConfigCmd()
	}

	return a.routeToView(msg)
}

// routeToView delivers a message to the view that owns it. Async
// completion messages go to their owning view regardless of which view
// is on screen, so a dashboard refresh finishing while the student reads
// materials still lands.
func (a *App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.(type) {
	case chat.ThreadsLoadedMsg, chat.ThreadCreatedMsg, chat.HistoryLoadedMsg,
		chat.ChatReplyMsg, chat.DashboardLoadedMsg, chat.SummaryLoadedMsg,
		chat.FeedbackSentMsg, chat.SubscribedMsg, chat.VoiceTranscriptMsg:
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case goals.GoalsLoadedMsg, goals.TopicsLoadedMsg, goals.PlansLoadedMsg,
		goals.GoalChangedMsg:
		a.goals, cmd = a.goals.Update(msg)
		return a, cmd

	case materials.SubjectsLoadedMsg, materials.CategoriesLoadedMsg,
		materials.ContentLoadedMsg:
		a.materials, cmd = a.materials.Update(msg)
		return a, cmd
	}

	// Keys, ticks, and banner timers go to the active view.
	switch a.view {
	case ViewLogin:
		a.login, cmd = a.login.Update(msg)
	case ViewChat:
		a.chat, cmd = a.chat.Update(msg)
	case ViewGoals:
		a.goals, cmd = a.goals.Update(msg)
	case ViewMaterials:
		a.materials, cmd = a.materials.Update(msg)
	}
	return a, cmd
}

// enterChat switches to the authenticated chat view and starts the
// post-auth fan-out. First-auth side effects are guarded so a second
// login in the same run does not attach them twice.
func (a *App) enterChat(s session.Session) tea.Cmd {
	a.view = ViewChat

	if a.boot.AttachOnce() {
		if a.cfg.Voice.Enabled && a.voice != nil {
			// Best effort; an unsupported engine is reported by the
			// chat view the first time F2 is pressed.
			a.voice.Enable()
		}
	}
	return a.chat.SetSession(s)
}

// applyConfig applies a live-reloaded config: theme flips take effect
// on the next render, the API client is repointed, and voice dictation
// is shut off when disabled.
func (a *App) applyConfig(cfg *config.Config) {
	a.cfg = cfg

	switch cfg.UI.Theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
	a.theme.Refresh()

	if a.client != nil {
		a.client.SetBaseURL(cfg.Server.URL)
	}
	if a.voice != nil && !cfg.Voice.Enabled {
		a.voice.Disable()
	}
}

func (a *App) signOut() tea.Cmd {
	sess := a.boot.Current()
	a.boot.SignOut()
	if a.voice != nil {
		a.voice.Disable()
	}
	if a.mirror != nil && sess.UserID != 0 {
		a.mirror.Purge(context.Background(), sess.UserID)
	}
	a.login.Reset()
	a.view = ViewLogin
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen.
func (a *App) View() string {
	switch a.view {
	case ViewChat:
		return a.chat.View()
	case ViewGoals:
		return a.goals.View()
	case ViewMaterials:
		return a.materials.View()
	default:
		return a.login.View()
	}
}
