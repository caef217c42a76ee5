// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file builds the tea.Cmd closures for every backend call the chat
// view makes. Each closure captures the parameters it was issued with so
// the completion message can be checked for staleness.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/histcache"
)

// =============================================================================
// THREAD COMMANDS
// =============================================================================

func loadThreadsCmd(client *api.Client, userID int) tea.Cmd {
	return func() tea.Msg {
		threads, err := client.ListThreads(context.Background(), userID)
		return ThreadsLoadedMsg{Threads: threads, Err: err}
	}
}

func createThreadCmd(client *api.Client, userID int, name string) tea.Cmd {
	return func() tea.Msg {
		th, err := client.CreateThread(context.Background(), userID, name)
		if err != nil {
			return ThreadCreatedMsg{Err: err}
		}
		return ThreadCreatedMsg{Thread: *th}
	}
}

// =============================================================================
// HISTORY COMMANDS
// =============================================================================

func loadHistoryCmd(client *api.Client, userID, threadID int, generation uint64) tea.Cmd {
	return func() tea.Msg {
		items, err := client.History(context.Background(), userID, threadID)
		return HistoryLoadedMsg{
			ThreadID:   threadID,
			Generation: generation,
			Items:      items,
			Err:        err,
		}
	}
}

// loadMirrorCmd reads the offline copy so the transcript renders while
// the live fetch is in flight. Errors are swallowed, the mirror is
// advisory.
func loadMirrorCmd(mirror *histcache.Mirror, userID, threadID int, generation uint64) tea.Cmd {
	if mirror == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := mirror.Load(context.Background(), userID, threadID)
		if err != nil || len(items) == 0 {
			return nil
		}
		return HistoryLoadedMsg{
			ThreadID:   threadID,
			Generation: generation,
			Items:      items,
			Mirror:     true,
		}
	}
}

// saveMirrorCmd replaces the offline copy after a successful live fetch.
func saveMirrorCmd(mirror *histcache.Mirror, userID, threadID int, items []api.HistoryItem) tea.Cmd {
	if mirror == nil {
		return nil
	}
	return func() tea.Msg {
		mirror.Replace(context.Background(), userID, threadID, items)
		return nil
	}
}

func appendMirrorCmd(mirror *histcache.Mirror, userID, threadID int, item api.HistoryItem) tea.Cmd {
	if mirror == nil {
		return nil
	}
	return func() tea.Msg {
		mirror.Append(context.Background(), userID, threadID, item)
		return nil
	}
}

// =============================================================================
// CHAT COMMANDS
// =============================================================================

func sendChatCmd(client *api.Client, userID, threadID int, generation uint64, prompt string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), userID, threadID, prompt)
		msg := ChatReplyMsg{
			ThreadID:   threadID,
			Generation: generation,
			Prompt:     prompt,
			Err:        err,
		}
		if resp != nil {
			msg.Reply = resp.Response
		}
		return msg
	}
}

// =============================================================================
// PROGRESS COMMANDS
// =============================================================================

func loadDashboardCmd(client *api.Client, userID int) tea.Cmd {
	return func() tea.Msg {
		dash, err := client.Dashboard(context.Background(), userID)
		if err != nil {
			return DashboardLoadedMsg{Err: err}
		}
		return DashboardLoadedMsg{Dashboard: *dash}
	}
}

// =============================================================================
// SLASH COMMAND BACKENDS
// =============================================================================

func loadSummaryCmd(client *api.Client, userID, threadID int) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.GetSummary(context.Background(), userID, threadID)
		msg := SummaryLoadedMsg{ThreadID: threadID, Err: err}
		if summary != nil {
			msg.Text = summary.Summary
		}
		return msg
	}
}

func sendFeedbackCmd(client *api.Client, userID, topicID, rating int, comments string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.SendFeedback(context.Background(), api.FeedbackCreate{
			UserID:   userID,
			TopicID:  topicID,
			Rating:   rating,
			Comments: comments,
		})
		return FeedbackSentMsg{Err: err}
	}
}

func subscribeCmd(client *api.Client, userID int) tea.Cmd {
	return func() tea.Msg {
		status, err := client.Subscribe(context.Background(), userID, "activate")
		if err != nil {
			return SubscribedMsg{Err: err}
		}
		return SubscribedMsg{Status: *status}
	}
}
