// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/studylab-tui/internal/model"
	"github.com/jeranaias/studylab-tui/internal/thread"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(components.RenderHeader(m.theme, m.viewTitle(), m.width))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if banner := m.banners.View(m.theme); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(components.RenderXPBar(m.theme, m.snapshot, m.width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(m.theme, components.StatusBarData{
		Username:     m.session.Username,
		Subscription: m.session.Subscription,
		Level:        m.snapshot.Level,
		StreakDays:   m.snapshot.StreakCount,
		MessageCount: m.threads.Count(),
		OverLimit:    m.threads.OverLimit(),
		VoiceState:   m.voiceState(),
		Width:        m.width,
	}))

	return b.String()
}

func (m *Model) viewTitle() string {
	if th := m.ActiveThread(); th != nil {
		return th.Name
	}
	return "Chat"
}

func (m *Model) renderTabs() string {
	titles := make([]string, len(m.threadList))
	for i, th := range m.threadList {
		titles[i] = th.Name
	}
	return components.RenderThreadTabs(m.theme, titles, m.activeIdx, m.width)
}

func (m *Model) renderInput() string {
	if m.sending {
		return m.theme.InputContainer.Width(m.width - 2).Render(
			m.spin.View() + m.theme.ThinkingText.Render(" Tutor is thinking..."))
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View())
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport rebuilds the transcript content and pins the view to
// the newest exchange. Safe before the first resize.
func (m *Model) refreshViewport() {
	if m.viewport.Width == 0 {
		return
	}

	if len(m.transcript) == 0 {
		if m.threads.HasActive() {
			m.viewport.SetContent(m.theme.PendingText.Render("No messages in this thread yet. Say hello!"))
		} else {
			m.viewport.SetContent(m.theme.PendingText.Render("No thread selected. Create one with /new <name>."))
		}
		return
	}

	lines := make([]string, 0, len(m.transcript)*2)
	for _, msg := range m.transcript {
		lines = append(lines, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg model.Message) string {
	width := m.viewport.Width - 8
	if width < 20 {
		width = 20
	}

	switch msg.Role {
	case thread.RoleUser:
		body := msg.Content
		if msg.Pending {
			body += " " + m.theme.PendingText.Render("(sending)")
		}
		return m.theme.UserBubble.Width(width).Render(body)

	case thread.RoleTutor:
		body := msg.Content
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(msg.Content); err == nil {
				body = strings.TrimRight(rendered, "\n")
			}
		}
		return m.theme.TutorBubble.Width(width).Render(body)

	default:
		return m.theme.SystemNotice.Width(width).Render(msg.Content)
	}
}

func (m *Model) voiceState() voice.State {
	if m.voice == nil {
		return voice.Off
	}
	return m.voice.State()
}
