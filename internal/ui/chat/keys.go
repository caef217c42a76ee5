// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keyboard bindings for the chat view.
type KeyMap struct {
	Submit     key.Binding
	NextThread key.Binding
	PrevThread key.Binding
	Voice      key.Binding
	Goals      key.Binding
	Materials  key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NextThread: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next thread"),
		),
		PrevThread: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous thread"),
		),
		Voice: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "toggle dictation"),
		),
		Goals: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "goals"),
		),
		Materials: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "materials"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer hint line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextThread, k.Voice, k.Goals, k.Materials, k.Quit}
}
