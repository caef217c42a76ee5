// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/thread"
)

// =============================================================================
// MESSAGES
// =============================================================================

// Message is a single rendered line in the conversation transcript.
type Message struct {
	// ID is a local identifier, never sent to the server.
	ID string

	Role    thread.Role
	Content string
	Time    time.Time

	// Pending marks a user message that has been sent but not yet answered.
	Pending bool
}

// NewMessage creates a message with a fresh local ID.
func NewMessage(role thread.Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    time.Now(),
	}
}

// Exchange is one completed question/answer pair as the server stores it.
type Exchange struct {
	Prompt    string
	Reply     string
	Timestamp string
}

// FromHistory converts server history items into transcript messages,
// oldest first, preserving the prompt/reply pairing.
func FromHistory(items []api.HistoryItem) []Message {
	msgs := make([]Message, 0, len(items)*2)
	for _, item := range items {
		when, _ := time.Parse(time.RFC3339, item.Timestamp)
		msgs = append(msgs, Message{
			ID:      uuid.NewString(),
			Role:    thread.RoleUser,
			Content: item.Message,
			Time:    when,
		})
		msgs = append(msgs, Message{
			ID:      uuid.NewString(),
			Role:    thread.RoleTutor,
			Content: item.Response,
			Time:    when,
		})
	}
	return msgs
}
