// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in / sign-up form shown while no
// session is authenticated.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthedMsg reports a completed login or registration.
type AuthedMsg struct {
	Session session.Session
	Err     error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldUsername = iota
	fieldPassword
)

// Model is the login form.
type Model struct {
	theme     *styles.Theme
	boot      *session.Bootstrapper
	username  textinput.Model
	password  textinput.Model
	focus     int
	register  bool
	submitting bool
	errText   string
	width     int
	height    int
}

// New creates the login form.
func New(theme *styles.Theme, boot *session.Bootstrapper) *Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return &Model{
		theme:    theme,
		boot:     boot,
		username: user,
		password: pass,
	}
}

// Init satisfies tea.Model conventions; the form has no startup work.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize stores the window dimensions for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reset clears the form, shown again after sign-out.
func (m *Model) Reset() {
	m.username.Reset()
	m.password.Reset()
	m.focus = fieldUsername
	m.username.Focus()
	m.password.Blur()
	m.errText = ""
	m.submitting = false
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles form input and submission results.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.cycleFocus()
			return m, nil
		case "ctrl+r":
			m.register = !m.register
			m.errText = ""
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+q", "ctrl+c":
			return m, tea.Quit
		}

	case AuthedMsg:
		m.submitting = false
		if msg.Err != nil {
			// Login failures are inline, never fatal.
			m.errText = msg.Err.Error()
			m.password.Reset()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleFocus() {
	if m.focus == fieldUsername {
		m.focus = fieldPassword
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focus = fieldUsername
		m.password.Blur()
		m.username.Focus()
	}
}

func (m *Model) submit() (*Model, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "Username and password are required"
		return m, nil
	}
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.errText = ""

	boot, register := m.boot, m.register
	return m, func() tea.Msg {
		var (
			sess session.Session
			err  error
		)
		if register {
			sess, err = boot.Register(context.Background(), username, password)
		} else {
			sess, err = boot.Login(context.Background(), username, password)
		}
		return AuthedMsg{Session: sess, Err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the centered form.
func (m *Model) View() string {
	var b strings.Builder

	title := "Sign in to StudyLab"
	hint := "Ctrl+R to create an account"
	if m.register {
		title = "Create your StudyLab account"
		hint = "Ctrl+R to sign in instead"
	}

	b.WriteString(m.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.FormLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.username.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.FormLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(m.theme.PendingText.Render("Signing in..."))
	} else if m.errText != "" {
		b.WriteString(m.theme.FormError.Render(m.errText))
	} else {
		b.WriteString(m.theme.ShortcutDesc.Render(hint))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 3).
		Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
