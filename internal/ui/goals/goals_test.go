// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package goals

import (
	"testing"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

func testModel() *Model {
	m := New(styles.NewTheme(), api.NewClient())
	m.userID = 1
	m.SetSize(80, 24)
	return m
}

func TestGoalsLoaded(t *testing.T) {
	m := testModel()

	m.Update(GoalsLoadedMsg{Goals: []api.Goal{
		{ID: 1, Description: "Finish algebra unit", TargetSessions: 5, CompletedSessions: 2},
		{ID: 2, Description: "Essay draft", TargetSessions: 3},
	}})
	if len(m.goals) != 2 {
		t.Fatalf("goals = %d, want 2", len(m.goals))
	}
}

func TestGoalChanged_ReplacesInPlace(t *testing.T) {
	m := testModel()
	m.Update(GoalsLoadedMsg{Goals: []api.Goal{
		{ID: 1, Description: "Finish algebra unit", TargetSessions: 5, CompletedSessions: 2},
	}})

	m.Update(GoalChangedMsg{Goal: api.Goal{
		ID: 1, Description: "Finish algebra unit", TargetSessions: 5, CompletedSessions: 3,
	}})
	if len(m.goals) != 1 {
		t.Fatalf("update duplicated the goal: %d entries", len(m.goals))
	}
	if m.goals[0].CompletedSessions != 3 {
		t.Errorf("completed = %d, want the server's value 3", m.goals[0].CompletedSessions)
	}
}

func TestGoalChanged_AppendsNewGoal(t *testing.T) {
	m := testModel()

	m.Update(GoalChangedMsg{Goal: api.Goal{ID: 9, Description: "New goal", TargetSessions: 2}})
	if len(m.goals) != 1 || m.goals[0].ID != 9 {
		t.Error("created goal should appear in the list")
	}
}

func TestGoalChanged_CompletionBanner(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(GoalChangedMsg{
		Goal:      api.Goal{ID: 1, TargetSessions: 3, CompletedSessions: 3},
		Completed: true,
	})
	if cmd == nil {
		t.Fatal("completion should schedule a banner")
	}
	if !m.banners.Visible(components.BannerStandard) {
		t.Error("completion banner not shown")
	}
}

func TestGoalChanged_ErrorBanner(t *testing.T) {
	m := testModel()

	m.Update(GoalChangedMsg{Err: api.ErrNotFound})
	if !m.banners.Visible(components.BannerStandard) {
		t.Error("error should surface in a banner")
	}
	if len(m.goals) != 0 {
		t.Error("error must not change the list")
	}
}

func TestSubmitForm_Validation(t *testing.T) {
	m := testModel()
	m.creating = true

	// Missing fields fail without issuing a create.
	m.descInput.SetValue("")
	m.topicInput.SetValue("1")
	m.countInput.SetValue("3")
	if _, cmd := m.submitForm(); cmd == nil || !m.banners.Visible(components.BannerStandard) {
		t.Error("empty description should warn, not create")
	}
	if !m.creating {
		t.Error("invalid form should stay open")
	}

	m.banners.Hide(components.BannerStandard)
	m.descInput.SetValue("Finish algebra unit")
	m.countInput.SetValue("0")
	m.submitForm()
	if !m.banners.Visible(components.BannerStandard) {
		t.Error("zero session target should warn")
	}
}
