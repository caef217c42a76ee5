// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat view.
// Messages that complete an async fetch carry the thread id and
// generation the fetch was issued for.
package chat

import (
	"github.com/jeranaias/studylab-tui/internal/api"
)

// =============================================================================
// THREAD MESSAGES
// =============================================================================

// ThreadsLoadedMsg delivers the user's thread list.
type ThreadsLoadedMsg struct {
	Threads []api.Thread
	Err     error
}

// ThreadCreatedMsg confirms a new thread.
type ThreadCreatedMsg struct {
	Thread api.Thread
	Err    error
}

// =============================================================================
// HISTORY AND CHAT MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers one thread's history.
// Mirror marks a local preview from the offline cache rather than a
// server fetch; previews render but never drive the message counter.
type HistoryLoadedMsg struct {
	ThreadID   int
	Generation uint64
	Items      []api.HistoryItem
	Mirror     bool
	Err        error
}

// ChatReplyMsg delivers the tutor's reply to a sent message.
type ChatReplyMsg struct {
	ThreadID   int
	Generation uint64
	Prompt     string
	Reply      string
	Err        error
}

// =============================================================================
// PROGRESS MESSAGES
// =============================================================================

// DashboardLoadedMsg delivers refreshed gamification stats.
type DashboardLoadedMsg struct {
	Dashboard api.Dashboard
	Err       error
}

// =============================================================================
// COMMAND RESULT MESSAGES
// =============================================================================

// SummaryLoadedMsg delivers the server-side summary for a thread.
type SummaryLoadedMsg struct {
	ThreadID int
	Text     string
	Err      error
}

// FeedbackSentMsg confirms feedback submission.
type FeedbackSentMsg struct {
	Err error
}

// SubscribedMsg confirms a subscription upgrade.
type SubscribedMsg struct {
	Status api.SubscriptionStatus
	Err    error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceTranscriptMsg carries a final dictation result into the send path.
type VoiceTranscriptMsg struct {
	Text string
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// SignOutMsg asks the root model to clear the session and show login.
type SignOutMsg struct{}

// ShowGoalsMsg asks the root model to switch to the goals view.
type ShowGoalsMsg struct{}

// ShowMaterialsMsg asks the root model to switch to the materials view.
type ShowMaterialsMsg struct{}
