// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/model"
	"github.com/jeranaias/studylab-tui/internal/progress"
	"github.com/jeranaias/studylab-tui/internal/thread"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all chat view messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case components.BannerFadeMsg, components.BannerHideMsg:
		m.banners.Update(msg)
		return m, nil

	case ThreadsLoadedMsg:
		return m.handleThreadsLoaded(msg)

	case ThreadCreatedMsg:
		return m.handleThreadCreated(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case ChatReplyMsg:
		return m.handleChatReply(msg)

	case DashboardLoadedMsg:
		return m.handleDashboardLoaded(msg)

	case SummaryLoadedMsg:
		return m.handleSummaryLoaded(msg)

	case FeedbackSentMsg:
		if msg.Err != nil {
			return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
		}
		return m, m.banners.Show(components.BannerStandard, "Thanks for the feedback!")

	case SubscribedMsg:
		if msg.Err != nil {
			return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
		}
		m.session.Subscription = msg.Status.Status
		return m, m.banners.Show(components.BannerStandard, "Subscription "+msg.Status.Status)

	case VoiceTranscriptMsg:
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return m, nil
		}
		return m.send(text)
	}

	// Everything else goes to the focused input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextThread):
		return m.switchBy(1)

	case key.Matches(msg, m.keys.PrevThread):
		return m.switchBy(-1)

	case key.Matches(msg, m.keys.Voice):
		return m.toggleVoice()

	case key.Matches(msg, m.keys.Goals):
		return m, func() tea.Msg { return ShowGoalsMsg{} }

	case key.Matches(msg, m.keys.Materials):
		return m, func() tea.Msg { return ShowMaterialsMsg{} }

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.input.Value())
		if strings.HasPrefix(text, "/") {
			m.input.Reset()
			return m.runCommand(text)
		}
		return m.send(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) toggleVoice() (*Model, tea.Cmd) {
	if m.voice == nil {
		return m, nil
	}
	if err := m.voice.Toggle(); err != nil {
		if m.voiceWarned {
			return m, nil
		}
		m.voiceWarned = true
		return m, m.banners.Show(components.BannerStandard, err.Error())
	}
	return m, nil
}

// =============================================================================
// SENDING
// =============================================================================

// send runs the guarded send pipeline. Missing auth, no active thread,
// empty input, or an in-flight send are all silent no-ops.
func (m *Model) send(text string) (*Model, tea.Cmd) {
	if text == "" || m.sending || !m.session.Authenticated() || !m.threads.HasActive() {
		return m, nil
	}

	userMsg := model.NewMessage(thread.RoleUser, text)
	userMsg.Pending = true
	m.transcript = append(m.transcript, userMsg)
	m.sending = true
	m.input.Reset()
	m.refreshViewport()

	return m, tea.Batch(
		m.spin.Tick,
		sendChatCmd(m.client, m.session.UserID, m.threads.Current(), m.threads.Generation(), text),
	)
}

func (m *Model) handleChatReply(msg ChatReplyMsg) (*Model, tea.Cmd) {
	m.sending = false

	// A reply for a thread we already left is dropped.
	if msg.ThreadID != m.threads.Current() || msg.Generation != m.threads.Generation() {
		return m, nil
	}

	if msg.Err != nil {
		// Roll the pending user message back and give the text back to
		// the input so nothing typed is lost.
		if n := len(m.transcript); n > 0 && m.transcript[n-1].Pending {
			m.transcript = m.transcript[:n-1]
		}
		m.input.SetValue(msg.Prompt)
		m.refreshViewport()
		return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
	}

	if n := len(m.transcript); n > 0 && m.transcript[n-1].Pending {
		m.transcript[n-1].Pending = false
	}
	m.transcript = append(m.transcript, model.NewMessage(thread.RoleTutor, msg.Reply))
	m.threads.RecordMessage(thread.RoleUser)
	m.threads.RecordMessage(thread.RoleTutor)
	m.refreshViewport()

	cmds := []tea.Cmd{loadDashboardCmd(m.client, m.session.UserID)}
	if cmd := appendMirrorCmd(m.mirror, m.session.UserID, msg.ThreadID, api.HistoryItem{
		Message:  msg.Prompt,
		Response: msg.Reply,
	}); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.threads.OverLimit() {
		cmds = append(cmds, m.banners.Show(components.BannerStandard,
			"This conversation is getting long. Start a new thread with /new or condense it with /summary."))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// THREADS
// =============================================================================

func (m *Model) handleThreadsLoaded(msg ThreadsLoadedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
	}
	m.threadList = msg.Threads
	if len(m.threadList) == 0 {
		return m, nil
	}

	idx := 0
	if cached := m.store.ActiveThread(); cached != 0 {
		for i, th := range m.threadList {
			if th.ID == cached {
				idx = i
				break
			}
		}
	}
	return m.switchTo(idx)
}

func (m *Model) handleThreadCreated(msg ThreadCreatedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
	}
	m.threadList = append(m.threadList, msg.Thread)
	_, cmd := m.switchTo(len(m.threadList) - 1)
	return m, tea.Batch(cmd,
		m.banners.Show(components.BannerStandard, "Started thread "+msg.Thread.Name))
}

func (m *Model) switchBy(delta int) (*Model, tea.Cmd) {
	if len(m.threadList) == 0 {
		return m, nil
	}
	idx := (m.activeIdx + delta + len(m.threadList)) % len(m.threadList)
	return m.switchTo(idx)
}

// switchTo makes the thread at idx active. Re-selecting the current
// thread is a no-op; a real switch resets the counter, advances the
// generation, and issues mirror preview plus live history fetch.
func (m *Model) switchTo(idx int) (*Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.threadList) {
		return m, nil
	}
	m.activeIdx = idx
	id := m.threadList[idx].ID
	if !m.threads.Select(id) {
		return m, nil
	}

	m.transcript = nil
	m.liveLoaded = false
	m.store.SetActiveThread(id)
	m.refreshViewport()

	gen := m.threads.Generation()
	cmds := []tea.Cmd{loadHistoryCmd(m.client, m.session.UserID, id, gen)}
	if cmd := loadMirrorCmd(m.mirror, m.session.UserID, id, gen); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// HISTORY
// =============================================================================

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (*Model, tea.Cmd) {
	// History for a thread that is no longer active is discarded.
	if msg.ThreadID != m.threads.Current() || msg.Generation != m.threads.Generation() {
		return m, nil
	}

	if msg.Mirror {
		// The preview only fills the gap until the live copy lands.
		if m.liveLoaded {
			return m, nil
		}
		m.transcript = model.FromHistory(msg.Items)
		m.refreshViewport()
		return m, nil
	}

	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
	}

	m.liveLoaded = true
	m.transcript = model.FromHistory(msg.Items)
	m.threads.SetHistoryLength(len(msg.Items))
	m.refreshViewport()

	var cmds []tea.Cmd
	if cmd := saveMirrorCmd(m.mirror, m.session.UserID, msg.ThreadID, msg.Items); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.threads.OverLimit() {
		cmds = append(cmds, m.banners.Show(components.BannerStandard,
			"This conversation is getting long. Start a new thread with /new or condense it with /summary."))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// PROGRESS
// =============================================================================

func (m *Model) handleDashboardLoaded(msg DashboardLoadedMsg) (*Model, tea.Cmd) {
	// Background refresh; failures stay silent and keep the last stats.
	if msg.Err != nil {
		return m, nil
	}

	snap := progress.Snapshot{
		XP:          msg.Dashboard.XP,
		Level:       msg.Dashboard.Level,
		StreakCount: msg.Dashboard.StreakCount,
	}
	m.snapshot = snap
	m.session.XP = snap.XP
	m.session.Level = snap.Level
	m.session.StreakCount = snap.StreakCount
	m.store.SetProgress(snap.XP, snap.Level, snap.StreakCount)

	if m.tracker.Observe(snap) {
		return m, m.banners.Show(components.BannerLevelUp,
			fmt.Sprintf("Level up! You reached level %d", snap.Level))
	}
	return m, nil
}

func (m *Model) handleSummaryLoaded(msg SummaryLoadedMsg) (*Model, tea.Cmd) {
	if msg.ThreadID != m.threads.Current() {
		return m, nil
	}
	if msg.Err != nil {
		if api.IsNotFound(msg.Err) {
			return m, m.banners.Show(components.BannerStandard, "No summary yet for this thread")
		}
		return m, m.banners.Show(components.BannerStandard, errorText(msg.Err))
	}
	m.transcript = append(m.transcript,
		model.NewMessage(thread.RoleSystem, "Summary so far: "+msg.Text))
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (m *Model) runCommand(text string) (*Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/new":
		name := strings.TrimSpace(strings.TrimPrefix(text, "/new"))
		if name == "" {
			name = "New thread"
		}
		return m, createThreadCmd(m.client, m.session.UserID, name)

	case "/threads":
		if len(m.threadList) == 0 {
			return m, m.banners.Show(components.BannerStandard, "No threads yet")
		}
		var sb strings.Builder
		sb.WriteString("Threads:")
		for i, t := range m.threadList {
			marker := " "
			if i == m.activeIdx {
				marker = ">"
			}
			fmt.Fprintf(&sb, "\n%s %d. %s", marker, i+1, t.Name)
		}
		m.transcript = append(m.transcript, model.NewMessage(thread.RoleSystem, sb.String()))
		m.refreshViewport()
		return m, nil

	case "/summary":
		if !m.threads.HasActive() {
			return m, m.banners.Show(components.BannerStandard, "No active thread")
		}
		return m, loadSummaryCmd(m.client, m.session.UserID, m.threads.Current())

	case "/feedback":
		return m.runFeedback(args)

	case "/subscribe":
		return m, subscribeCmd(m.client, m.session.UserID)

	case "/signout":
		return m, func() tea.Msg { return SignOutMsg{} }

	case "/goals":
		return m, func() tea.Msg { return ShowGoalsMsg{} }

	case "/materials":
		return m, func() tea.Msg { return ShowMaterialsMsg{} }

	case "/quit":
		return m, tea.Quit
	}

	return m, m.banners.Show(components.BannerStandard, "Unknown command "+cmd)
}

// runFeedback parses "/feedback <topic-id> <rating 1-5> [comments...]".
func (m *Model) runFeedback(args []string) (*Model, tea.Cmd) {
	usage := "Usage: /feedback <topic-id> <rating 1-5> [comments]"
	if len(args) < 2 {
		return m, m.banners.Show(components.BannerStandard, usage)
	}
	topicID, err1 := strconv.Atoi(args[0])
	rating, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || rating < 1 || rating > 5 {
		return m, m.banners.Show(components.BannerStandard, usage)
	}
	comments := strings.Join(args[2:], " ")
	return m, sendFeedbackCmd(m.client, m.session.UserID, topicID, rating, comments)
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// errorText maps client errors to the line shown in the banner. Server
// detail text is surfaced verbatim.
func errorText(err error) string {
	if api.IsUnreachable(err) {
		return "Cannot reach the study server"
	}
	var cerr *api.ClientError
	if errors.As(err, &cerr) {
		return cerr.Message
	}
	return err.Error()
}
