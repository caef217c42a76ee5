// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/thread"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	store, err := cache.OpenPath(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	m := New(Options{
		Theme:  styles.NewTheme(),
		Client: api.NewClient(),
		Store:  store,
	})
	m.SetSession(session.Session{UserID: 1, Username: "sam", Role: "student"})
	m.SetSize(100, 30)
	return m
}

func loadThreads(t *testing.T, m *Model, threads ...api.Thread) {
	t.Helper()
	m, _ = m.Update(ThreadsLoadedMsg{Threads: threads})
	if m.threads.Current() == 0 {
		t.Fatal("no thread selected after load")
	}
}

func historyItems(n int) []api.HistoryItem {
	items := make([]api.HistoryItem, n)
	for i := range items {
		items[i] = api.HistoryItem{Message: "q", Response: "a", Timestamp: "t"}
	}
	return items
}

func TestHistoryLoad_SetsCounter(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})

	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: m.threads.Generation(), Items: historyItems(4)})
	if got := m.threads.Count(); got != 8 {
		t.Errorf("counter = %d after history of 4, want 8", got)
	}
	if len(m.transcript) != 8 {
		t.Errorf("transcript has %d messages, want 8", len(m.transcript))
	}
}

func TestStaleHistory_Discarded(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"}, api.Thread{ID: 8, Name: "History"})
	staleGen := m.threads.Generation()

	// Switch away before the first thread's history arrives.
	m.switchTo(1)

	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: staleGen, Items: historyItems(5)})
	if len(m.transcript) != 0 {
		t.Error("stale history rendered into the new thread")
	}
	if m.threads.Count() != 0 {
		t.Errorf("stale history drove the counter to %d", m.threads.Count())
	}
}

func TestMirrorPreview_IgnoredAfterLiveLoad(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})
	gen := m.threads.Generation()

	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: gen, Items: historyItems(3)})
	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: gen, Items: historyItems(1), Mirror: true})

	if len(m.transcript) != 6 {
		t.Errorf("late mirror preview replaced live history: %d messages", len(m.transcript))
	}
	if m.threads.Count() != 6 {
		t.Errorf("mirror preview changed the counter: %d", m.threads.Count())
	}
}

func TestSendGuards(t *testing.T) {
	m := testModel(t)

	// No active thread.
	_, cmd := m.send("hello")
	if cmd != nil || m.sending {
		t.Error("send without an active thread must be a no-op")
	}

	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})

	// Empty input.
	_, cmd = m.send("")
	if cmd != nil || m.sending {
		t.Error("empty send must be a no-op")
	}

	// Valid send.
	_, cmd = m.send("what is 2+2")
	if cmd == nil || !m.sending {
		t.Fatal("valid send should start the pipeline")
	}
	if n := len(m.transcript); n != 1 || !m.transcript[n-1].Pending {
		t.Error("send should append a pending user message")
	}

	// In-flight send blocks another.
	_, cmd = m.send("again")
	if cmd != nil {
		t.Error("second send while one is in flight must be a no-op")
	}
}

func TestChatReply_RecordsBothSides(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})
	gen := m.threads.Generation()

	m.send("what is 2+2")
	m.Update(ChatReplyMsg{ThreadID: 7, Generation: gen, Prompt: "what is 2+2", Reply: "4"})

	if m.sending {
		t.Error("sending flag should clear on reply")
	}
	if got := m.threads.Count(); got != 2 {
		t.Errorf("counter = %d after one exchange, want 2", got)
	}
	if n := len(m.transcript); n != 2 {
		t.Fatalf("transcript has %d messages, want 2", n)
	}
	if m.transcript[0].Pending {
		t.Error("user message still pending after reply")
	}
	if m.transcript[1].Role != thread.RoleTutor {
		t.Error("second message should be the tutor reply")
	}
}

func TestChatReply_ErrorRollsBack(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})
	gen := m.threads.Generation()

	m.send("lost question")
	m.Update(ChatReplyMsg{
		ThreadID:   7,
		Generation: gen,
		Prompt:     "lost question",
		Err:        &api.ClientError{Type: api.ErrTypeServer, Message: "Daily limit reached"},
	})

	if len(m.transcript) != 0 {
		t.Error("failed send should remove the pending message")
	}
	if m.input.Value() != "lost question" {
		t.Error("failed send should hand the text back to the input")
	}
	if m.threads.Count() != 0 {
		t.Errorf("failed send changed the counter: %d", m.threads.Count())
	}
	if !m.banners.Visible(components.BannerStandard) {
		t.Error("server detail should surface in a banner")
	}
	if m.banners.Text(components.BannerStandard) != "Daily limit reached" {
		t.Errorf("banner text = %q", m.banners.Text(components.BannerStandard))
	}
}

func TestStaleChatReply_Discarded(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"}, api.Thread{ID: 8, Name: "History"})
	gen := m.threads.Generation()

	m.send("question for algebra")
	m.switchTo(1)

	m.Update(ChatReplyMsg{ThreadID: 7, Generation: gen, Prompt: "question for algebra", Reply: "late"})
	if len(m.transcript) != 0 {
		t.Error("reply for a left thread rendered into the new one")
	}
	if m.threads.Count() != 0 {
		t.Errorf("stale reply changed the counter: %d", m.threads.Count())
	}
	if m.sending {
		t.Error("sending flag should clear even for a stale reply")
	}
}

func TestOverflowBanner_AfterElevenMessages(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})
	gen := m.threads.Generation()

	// Five stored exchanges put the counter at 10 (not over).
	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: gen, Items: historyItems(5)})
	if m.banners.Visible(components.BannerStandard) {
		t.Fatal("counter of exactly 10 must not warn")
	}

	// The sixth exchange crosses the limit.
	m.send("one more")
	m.Update(ChatReplyMsg{ThreadID: 7, Generation: gen, Prompt: "one more", Reply: "ok"})
	if got := m.threads.Count(); got != 12 {
		t.Fatalf("counter = %d, want 12", got)
	}
	if !m.banners.Visible(components.BannerStandard) {
		t.Error("crossing the context limit should warn")
	}
}

func TestDashboard_LevelUpBanner(t *testing.T) {
	m := testModel(t)

	m.Update(DashboardLoadedMsg{Dashboard: api.Dashboard{XP: 120, Level: 1, StreakCount: 2}})
	if m.banners.Visible(components.BannerLevelUp) {
		t.Fatal("first observation persists the level without celebrating")
	}

	m.Update(DashboardLoadedMsg{Dashboard: api.Dashboard{XP: 260, Level: 2, StreakCount: 2}})
	if !m.banners.Visible(components.BannerLevelUp) {
		t.Error("level increase should show the level-up banner")
	}

	// Same level again must not re-fire.
	m.banners.Hide(components.BannerLevelUp)
	m.Update(DashboardLoadedMsg{Dashboard: api.Dashboard{XP: 270, Level: 2, StreakCount: 3}})
	if m.banners.Visible(components.BannerLevelUp) {
		t.Error("unchanged level re-fired the celebration")
	}
}

func TestReselectActiveThread_NoReload(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})
	gen := m.threads.Generation()

	m.Update(HistoryLoadedMsg{ThreadID: 7, Generation: gen, Items: historyItems(3)})

	_, cmd := m.switchTo(0)
	if cmd != nil {
		t.Error("re-selecting the active thread must not refetch")
	}
	if m.threads.Count() != 6 {
		t.Errorf("re-select reset the counter: %d", m.threads.Count())
	}
}

func TestVoiceTranscript_FeedsSendPath(t *testing.T) {
	m := testModel(t)
	loadThreads(t, m, api.Thread{ID: 7, Name: "Algebra"})

	var cmd tea.Cmd
	m, cmd = m.Update(VoiceTranscriptMsg{Text: "  explain photosynthesis  "})
	if cmd == nil || !m.sending {
		t.Fatal("transcript should enter the send pipeline")
	}
	if m.transcript[0].Content != "explain photosynthesis" {
		t.Errorf("transcript not trimmed: %q", m.transcript[0].Content)
	}
}
