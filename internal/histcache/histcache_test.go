// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package histcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jeranaias/studylab-tui/internal/api"
)

func testMirror(t *testing.T) *Mirror {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLoad_EmptyThread(t *testing.T) {
	m := testMirror(t)

	items, err := m.Load(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty history, got %d items", len(items))
	}
}

func TestReplace_ThenLoad(t *testing.T) {
	m := testMirror(t)
	ctx := context.Background()

	items := []api.HistoryItem{
		{Message: "what is a derivative", Response: "The derivative measures...", Timestamp: "2026-08-30T10:00:00"},
		{Message: "give an example", Response: "For f(x) = x^2...", Timestamp: "2026-08-30T10:01:00"},
	}
	if err := m.Replace(ctx, 1, 7, items); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := m.Load(ctx, 1, 7)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Message != "what is a derivative" {
		t.Errorf("order not preserved: first = %q", got[0].Message)
	}
	if got[1].Response != "For f(x) = x^2..." {
		t.Errorf("reply mismatch: %q", got[1].Response)
	}
}

func TestReplace_OverwritesStaleRows(t *testing.T) {
	m := testMirror(t)
	ctx := context.Background()

	old := []api.HistoryItem{{Message: "old", Response: "old reply", Timestamp: "t1"}}
	if err := m.Replace(ctx, 1, 7, old); err != nil {
		t.Fatal(err)
	}

	fresh := []api.HistoryItem{
		{Message: "new a", Response: "r1", Timestamp: "t2"},
		{Message: "new b", Response: "r2", Timestamp: "t3"},
	}
	if err := m.Replace(ctx, 1, 7, fresh); err != nil {
		t.Fatal(err)
	}

	got, err := m.Load(ctx, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Message != "new a" {
		t.Errorf("stale rows survived replace: %+v", got)
	}
}

func TestThreadsAreIsolated(t *testing.T) {
	m := testMirror(t)
	ctx := context.Background()

	m.Replace(ctx, 1, 1, []api.HistoryItem{{Message: "math", Response: "r", Timestamp: "t"}})
	m.Replace(ctx, 1, 2, []api.HistoryItem{{Message: "history", Response: "r", Timestamp: "t"}})
	m.Replace(ctx, 2, 1, []api.HistoryItem{{Message: "other user", Response: "r", Timestamp: "t"}})

	got, err := m.Load(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Message != "math" {
		t.Errorf("thread isolation broken: %+v", got)
	}
}

func TestAppend(t *testing.T) {
	m := testMirror(t)
	ctx := context.Background()

	m.Replace(ctx, 1, 1, []api.HistoryItem{{Message: "a", Response: "r1", Timestamp: "t1"}})
	if err := m.Append(ctx, 1, 1, api.HistoryItem{Message: "b", Response: "r2", Timestamp: "t2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := m.Load(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Message != "b" {
		t.Errorf("append not reflected: %+v", got)
	}
}

func TestPurge(t *testing.T) {
	m := testMirror(t)
	ctx := context.Background()

	m.Replace(ctx, 1, 1, []api.HistoryItem{{Message: "a", Response: "r", Timestamp: "t"}})
	m.Replace(ctx, 1, 2, []api.HistoryItem{{Message: "b", Response: "r", Timestamp: "t"}})
	m.Replace(ctx, 2, 1, []api.HistoryItem{{Message: "keep", Response: "r", Timestamp: "t"}})

	if err := m.Purge(ctx, 1); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}

	for _, tid := range []int{1, 2} {
		got, err := m.Load(ctx, 1, tid)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("thread %d survived purge", tid)
		}
	}

	got, err := m.Load(ctx, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Error("purge removed another user's rows")
	}
}

func TestClosed(t *testing.T) {
	m := testMirror(t)
	m.Close()

	if _, err := m.Load(context.Background(), 1, 1); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := m.Append(context.Background(), 1, 1, api.HistoryItem{}); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
