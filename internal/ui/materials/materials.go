// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package materials provides the study-material browser: subject list,
// category list for the chosen subject, and a viewport over that
// category's units. Changing the subject always resets the category to
// the first one the server reports for it; the last cursor position is
// persisted so the browser reopens where the student left off.
package materials

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/ui/components"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SubjectsLoadedMsg delivers the available subjects.
type SubjectsLoadedMsg struct {
	Subjects []string
	Err      error
}

// CategoriesLoadedMsg delivers the categories of one subject.
type CategoriesLoadedMsg struct {
	Subject    string
	Categories []string
	Err        error
}

// ContentLoadedMsg delivers the units of one subject/category pair.
type ContentLoadedMsg struct {
	Subject  string
	Category string
	Units    []api.MaterialUnit
	Err      error
}

// BackMsg asks the root model to return to the chat view.
type BackMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

// LoadCmd fetches the subject list.
func LoadCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		subjects, err := client.ListSubjects(context.Background())
		return SubjectsLoadedMsg{Subjects: subjects, Err: err}
	}
}

func loadCategoriesCmd(client *api.Client, subject string) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.ListCategories(context.Background(), subject)
		return CategoriesLoadedMsg{Subject: subject, Categories: categories, Err: err}
	}
}

func loadContentCmd(client *api.Client, subject, category string) tea.Cmd {
	return func() tea.Msg {
		mats, err := client.GetMaterials(context.Background(), subject, category)
		msg := ContentLoadedMsg{Subject: subject, Category: category, Err: err}
		if mats != nil {
			msg.Units = mats.Units
		}
		return msg
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the materials browser.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	store  *cache.Store

	subjects   []string
	categories []string
	subject    string
	category   string

	subjectIdx  int
	categoryIdx int

	content  viewport.Model
	banners  *components.Banners
	titleize cases.Caser

	width  int
	height int
}

// New creates the materials browser.
func New(theme *styles.Theme, client *api.Client, store *cache.Store) *Model {
	return &Model{
		theme:    theme,
		client:   client,
		store:    store,
		banners:  components.NewBanners(),
		titleize: cases.Title(language.English),
	}
}

// Open reloads the subject list; the persisted cursor is re-applied when
// the lists arrive.
func (m *Model) Open() tea.Cmd {
	return LoadCmd(m.client)
}

// SetSize resizes the content viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	if m.content.Width == 0 {
		m.content = viewport.New(width, vpHeight)
	} else {
		m.content.Width = width
		m.content.Height = vpHeight
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles browser messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.BannerFadeMsg, components.BannerHideMsg:
		m.banners.Update(msg)
		return m, nil

	case SubjectsLoadedMsg:
		return m.handleSubjects(msg)

	case CategoriesLoadedMsg:
		return m.handleCategories(msg)

	case ContentLoadedMsg:
		return m.handleContent(msg)
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		return m.moveSubject(-1)
	case "right", "l":
		return m.moveSubject(1)
	case "up", "k":
		return m.moveCategory(-1)
	case "down", "j":
		return m.moveCategory(1)
	case "pgup", "ctrl+u":
		m.content.HalfViewUp()
		return m, nil
	case "pgdown", "ctrl+d":
		m.content.HalfViewDown()
		return m, nil
	case "esc", "q", "f4":
		return m, func() tea.Msg { return BackMsg{} }
	case "ctrl+q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) moveSubject(delta int) (*Model, tea.Cmd) {
	if len(m.subjects) == 0 {
		return m, nil
	}
	idx := (m.subjectIdx + delta + len(m.subjects)) % len(m.subjects)
	if idx == m.subjectIdx && m.subject != "" {
		return m, nil
	}
	return m.selectSubject(idx)
}

// selectSubject switches subject and drops the category back to the
// first one the server lists for it.
func (m *Model) selectSubject(idx int) (*Model, tea.Cmd) {
	m.subjectIdx = idx
	m.subject = m.subjects[idx]
	m.categories = nil
	m.category = ""
	m.categoryIdx = 0
	m.content.SetContent("")
	return m, loadCategoriesCmd(m.client, m.subject)
}

func (m *Model) moveCategory(delta int) (*Model, tea.Cmd) {
	if len(m.categories) == 0 {
		return m, nil
	}
	idx := (m.categoryIdx + delta + len(m.categories)) % len(m.categories)
	return m.selectCategory(idx)
}

func (m *Model) selectCategory(idx int) (*Model, tea.Cmd) {
	m.categoryIdx = idx
	m.category = m.categories[idx]
	m.store.SetMaterialCursor(m.subject, m.category)
	return m, loadContentCmd(m.client, m.subject, m.category)
}

func (m *Model) handleSubjects(msg SubjectsLoadedMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, msg.Err.Error())
	}
	m.subjects = msg.Subjects
	if len(m.subjects) == 0 {
		return m, nil
	}

	idx := 0
	if cached, _ := m.store.MaterialCursor(); cached != "" {
		for i, s := range m.subjects {
			if s == cached {
				idx = i
				break
			}
		}
	}
	return m.selectSubject(idx)
}

func (m *Model) handleCategories(msg CategoriesLoadedMsg) (*Model, tea.Cmd) {
	// Categories for a subject we already left are stale.
	if msg.Subject != m.subject {
		return m, nil
	}
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, msg.Err.Error())
	}
	m.categories = msg.Categories
	if len(m.categories) == 0 {
		m.content.SetContent(m.theme.PendingText.Render("No categories for this subject yet."))
		return m, nil
	}

	// Prefer the persisted category only when it still belongs to the
	// subject; otherwise the server's first category wins.
	idx := 0
	if cachedSubject, cachedCategory := m.store.MaterialCursor(); cachedSubject == m.subject {
		for i, c := range m.categories {
			if c == cachedCategory {
				idx = i
				break
			}
		}
	}
	return m.selectCategory(idx)
}

func (m *Model) handleContent(msg ContentLoadedMsg) (*Model, tea.Cmd) {
	if msg.Subject != m.subject || msg.Category != m.category {
		return m, nil
	}
	if msg.Err != nil {
		return m, m.banners.Show(components.BannerStandard, msg.Err.Error())
	}

	var b strings.Builder
	for _, unit := range msg.Units {
		b.WriteString(m.theme.StatsValue.Render(unit.Unit))
		b.WriteString("\n")
		for _, topic := range unit.Topics {
			b.WriteString(m.theme.ListItem.Render(topic.Name))
			b.WriteString("\n")
			if topic.Content != "" {
				b.WriteString(m.theme.ShortcutDesc.Render("  " + topic.Content))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString(m.theme.PendingText.Render("Nothing here yet."))
	}
	m.content.SetContent(b.String())
	m.content.GotoTop()
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.theme, "Materials", m.width))
	b.WriteString("\n")
	if banner := m.banners.View(m.theme); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(m.renderStrip(m.subjects, m.subjectIdx))
	b.WriteString("\n")
	b.WriteString(m.renderStrip(m.categories, m.categoryIdx))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render(
		"left/right: subject   up/down: category   PgUp/PgDn: scroll   Esc: back"))
	return b.String()
}

func (m *Model) renderStrip(items []string, activeIdx int) string {
	if len(items) == 0 {
		return m.theme.PendingText.Render("loading...")
	}
	parts := make([]string, 0, len(items))
	for i, item := range items {
		label := m.titleize.String(item)
		if i == activeIdx {
			parts = append(parts, m.theme.ListItemSelected.Render(label))
		} else {
			parts = append(parts, m.theme.ListItem.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
