// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package goals provides the study-goal view: the goal list with session
// progress, a creation form, and the complete-session action. Session
// completion is server-authoritative; the view only displays what the
// backend reports and awards nothing locally.
package goals

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// GoalsLoadedMsg delivers the user's goals.
type GoalsLoadedMsg struct {
	Goals []api.Goal
	Err   error
}

// TopicsLoadedMsg delivers the selectable topics for the create form.
type TopicsLoadedMsg struct {
	Topics []api.Topic
	Err    error
}

// PlansLoadedMsg delivers the user's study plans.
type PlansLoadedMsg struct {
	Plans []api.Plan
	Err   error
}

// GoalChangedMsg reports a created or updated goal.
type GoalChangedMsg struct {
	Goal      api.Goal
	Completed bool // a full target was just reached
	Err       error
}

// BackMsg asks the root model to return to the chat view.
type BackMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

// LoadCmd fetches goals, topics, and plans as independent commands.
func LoadCmd(client *api.Client, userID int) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			goals, err := client.ListGoals(context.Background(), userID)
			return GoalsLoadedMsg{Goals: goals, Err: err}
		},
		func() tea.Msg {
			topics, err := client.ListTopics(context.Background())
			return TopicsLoadedMsg{Topics: topics, Err: err}
		},
		func() tea.Msg {
			plans, err := client.ListPlans(context.Background(), userID)
			return PlansLoadedMsg{Plans: plans, Err: err}
		},
	)
}

func createGoalCmd(client *api.Client, g api.GoalCreate) tea.Cmd {
	return func() tea.Msg {
		goal, err := client.CreateGoal(context.Background(), g)
		if err != nil {
			return GoalChangedMsg{Err: err}
		}
		return GoalChangedMsg{Goal: *goal}
	}
}

func completeSessionCmd(client *api.Client, goalID int) tea.Cmd {
	return func() tea.Msg {
		goal, err := client.CompleteGoal(context.Background(), goalID)
		if err != nil {
			return GoalChangedMsg{Err: err}
		}
		return GoalChangedMsg{
			Goal:      *goal,
			Completed: goal.CompletedSessions >= goal.TargetSessions,
		}
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the goals view.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	userID int

	goals  []api.Goal
	topics []api.Topic
	plans  []api.Plan
	cursor int

	banners *components.Banners

	// create form
	creating   bool
	formFocus  int
	descInput  textinput.Model
	topicInput textinput.Model
	countInput textinput.Model

	width  int
	height int
}

// New creates the goals view.
func New(theme *styles.Theme, client *api.Client) *Model {
	desc := textinput.New()
	desc.Placeholder = "goal description"
	desc.CharLimit = 200

	topic := textinput.New()
	topic.Placeholder = "topic number from the list"
	topic.CharLimit = 6

	count := textinput.New()
	count.Placeholder = "target sessions"
	count.CharLimit = 3

	return &Model{
		theme:      theme,
		client:     client,
		banners:    components.NewBanners(),
		descInput:  desc,
		topicInput: topic,
		countInput: count,
	}
}

// SetUser points the view at a user and reloads its data.
func (m *Model) SetUser(userID int) tea.Cmd {
	m.userID = userID
	m.goals = nil
	m.plans = nil
	m.cursor = 0
	m.creating = false
	return LoadCmd(m.client, userID)
}

// SetSize stores the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles goal view messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.creating {
			return m.updateForm(msg)
		}
		return m.updateList(msg)

	case components.BannerFadeMsg, components.BannerHideMsg:
		m.banners.Update(msg)
		return m, nil

	case GoalsLoadedMsg:
		if msg.Err != nil {
			return m, m.banners.Show(components.BannerStandard, msg.Err.Error())
		}
		m.goals = msg.Goals
		if m.cursor >= len(m.goals) {
			m.cursor = 0
		}
		return m, nil

	case TopicsLoadedMsg:
		if msg.Err == nil {
			m.topics = msg.Topics
		}
		return m, nil

	case PlansLoadedMsg:
		if msg.Err == nil {
			m.plans = msg.Plans
		}
		return m, nil

	case GoalChangedMsg:
		return m.handleGoalChanged(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.goals)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(m.goals) {
			return m, completeSessionCmd(m.client, m.goals[m.cursor].ID)
		}
	case "n":
		m.creating = true
		m.formFocus = 0
		m.descInput.Focus()
		return m, textinput.Blink
	case "r":
		return m, LoadCmd(m.client, m.userID)
	case "esc", "q", "f3":
		return m, func() tea.Msg { return BackMsg{} }
	case "ctrl+q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		return m, nil
	case "tab", "down":
		m.setFormFocus(m.formFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFormFocus(m.formFocus - 1)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.descInput, cmd = m.descInput.Update(msg)
	case 1:
		m.topicInput, cmd = m.topicInput.Update(msg)
	default:
		m.countInput, cmd = m.countInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFormFocus(focus int) {
	m.formFocus = (focus + 3) % 3
	m.descInput.Blur()
	m.topicInput.Blur()
	m.countInput.Blur()
	switch m.formFocus {
	case 0:
		m.descInput.Focus()
	case 1:
		m.topicInput.Focus()
	default:
		m.countInput.Focus()
	}
}

func (m *Model) submitForm() (*Model, tea.Cmd) {
	desc := strings.TrimSpace(m.descInput.Value())
	topicID, terr := strconv.Atoi(strings.TrimSpace(m.topicInput.Value()))
	target, cerr := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if desc == "" || terr != nil || cerr != nil || target < 1 {
		return m, m.banners.Show(components.BannerStandard,
			"A description, a topic number, and a positive session target are required")
	}

	m.creating = false
	m.descInput.Reset()
	m.topicInput.Reset()
	m.countInput.Reset()

	return m, createGoalCmd(m.client, api.GoalCreate{
		UserID:         m.userID,
		TopicID:        topicID,
		Description:    desc,
		TargetSessions: target,
	})
}

func (m *Model) handleGoalChanged(msg GoalChangedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, msg.Err.Error())
	}

	replaced := false
	for i, g := range m.goals {
		if g.ID == msg.Goal.ID {
			m.goals[i] = msg.Goal
			replaced = true
			break
		}
	}
	if !replaced {
		m.goals = append(m.goals, msg.Goal)
	}

	if msg.Completed {
		return m, m.banners.Show(components.BannerStandard,
			"Goal complete! Bonus XP awarded.")
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the goal list or the create form.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.theme, "Goals", m.width))
	b.WriteString("\n")
	if banner := m.banners.View(m.theme); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.creating {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderList())
	}
	return b.String()
}

func (m *Model) renderList() string {
	var b strings.Builder

	if len(m.goals) == 0 {
		b.WriteString(m.theme.PendingText.Render("No goals yet. Press n to create one."))
		b.WriteString("\n")
	}
	for i, g := range m.goals {
		line := fmt.Sprintf("%s  %d/%d sessions", g.Description, g.CompletedSessions, g.TargetSessions)
		switch {
		case g.CompletedSessions >= g.TargetSessions:
			line = m.theme.ListItemDone.Render(line + "  " + styles.StatusIndicators.Success)
		case i == m.cursor:
			line = m.theme.ListItemSelected.Render(line)
		default:
			line = m.theme.ListItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.plans) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.StatsLabel.Render("Plans"))
		b.WriteString("\n")
		for _, p := range m.plans {
			label := fmt.Sprintf("Plan %d: %d goals", p.ID, len(p.Goals))
			if p.DueDate != "" {
				label += ", due " + p.DueDate
			}
			b.WriteString(m.theme.ListItem.Render(label))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render(
		"Enter: log session   n: new goal   r: refresh   Esc: back"))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder

	b.WriteString(m.theme.FormLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.descInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Topic"))
	b.WriteString("\n")
	for _, t := range m.topics {
		b.WriteString(m.theme.ShortcutDesc.Render(fmt.Sprintf("  %d: %s", t.ID, t.Name)))
		b.WriteString("\n")
	}
	b.WriteString(m.topicInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Target sessions"))
	b.WriteString("\n")
	b.WriteString(m.countInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.ShortcutDesc.Render("Enter: create   Tab: next field   Esc: cancel"))
	return b.String()
}
