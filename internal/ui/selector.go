package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/Rithvik-katakamm/llama-utils/internal/session"
)

// maxSelectorSessions caps the listing at the most recent sessions, the
// same cut the original selector applied.
const maxSelectorSessions = 10

// SessionStore is the store surface the selector needs.
type SessionStore interface {
	ListWithMeta() ([]session.Descriptor, error)
}

// sessionsLoadedMsg is sent when the session listing finishes.
type sessionsLoadedMsg struct {
	sessions []session.Descriptor
	err      error
}

// SelectorModel is the bubbletea model for the session picker shown when
// the chat starts without an explicit session.
type SelectorModel struct {
	store     SessionStore
	modelName string
	project   string

	// Data
	sessions []session.Descriptor

	// Navigation
	cursor int

	// State
	loading   bool
	spin      spinner.Model
	err       error
	confirmed bool

	// Result
	selected string // filename; empty means new session
	isNew    bool

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewSelectorModel creates a selector over the given store.
func NewSelectorModel(store SessionStore, modelName, project string) SelectorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return SelectorModel{
		store:     store,
		modelName: modelName,
		project:   project,
		loading:   true,
		spin:      sp,
		cursor:    0, // Start at "New session"
	}
}

// Init starts the spinner and kicks off the session listing.
func (m SelectorModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadSessions())
}

// loadSessions returns a command that lists sessions from the store.
func (m SelectorModel) loadSessions() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.store.ListWithMeta()
		if err != nil {
			return sessionsLoadedMsg{err: err}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

// Update handles messages and updates the model.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}

	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.sessions = msg.sessions
			if len(m.sessions) > maxSelectorSessions {
				m.sessions = m.sessions[:maxSelectorSessions]
			}
		}

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "up", "k":
			m.cursor--
			if m.cursor < 0 {
				// Wrap to last item (+1 for the "New session" row)
				m.cursor = len(m.sessions)
			}

		case "down", "j":
			m.cursor++
			if m.cursor > len(m.sessions) {
				m.cursor = 0
			}

		case "enter":
			m.confirmed = true
			if m.cursor == 0 {
				m.isNew = true
				m.selected = ""
			} else {
				m.isNew = false
				m.selected = m.sessions[m.cursor-1].Filename
			}
			return m, tea.Quit

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = len(m.sessions)
		}
	}

	return m, nil
}

// View renders the selector.
func (m SelectorModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.loading {
		return fmt.Sprintf("  %s Loading sessions...", m.spin.View())
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		m.renderHeader(contentWidth),
		m.renderList(contentWidth),
		m.renderStatusBar(contentWidth),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SelectorModel) renderHeader(width int) string {
	title := titleStyle.Render("📂 Your Conversations")
	subtitle := hintStyle.Render(fmt.Sprintf("  %s · %s", m.modelName, m.project))
	content := lipgloss.JoinHorizontal(lipgloss.Center, title, subtitle)
	return selectorHeaderStyle.Width(width).Render(content)
}

func (m SelectorModel) renderList(width int) string {
	var items []string

	// "New session" row is always first
	items = append(items, m.renderItem(0, session.Descriptor{}, true, width-6))

	if len(m.sessions) == 0 {
		items = append(items, hintStyle.Render("  No saved conversations"))
	} else {
		availableHeight := m.height - 10
		maxItems := max(5, availableHeight)

		scrollOffset := 0
		if m.cursor >= maxItems {
			scrollOffset = m.cursor - maxItems + 1
		}

		endIdx := min(scrollOffset+maxItems, len(m.sessions)+1)

		for i := scrollOffset; i < endIdx; i++ {
			if i == 0 {
				// "New session" already rendered
				continue
			}
			items = append(items, m.renderItem(i, m.sessions[i-1], false, width-6))
		}

		if scrollOffset > 0 {
			items = append([]string{hintStyle.Render("  ...")}, items...)
		}
		if endIdx < len(m.sessions)+1 {
			items = append(items, hintStyle.Render("  ..."))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return selectorPanelStyle.Width(width).Render(content)
}

func (m SelectorModel) renderItem(index int, d session.Descriptor, isNew bool, width int) string {
	cursor := "  "
	nameStyle := selectorItemStyle
	if index == m.cursor {
		cursor = selectorCursorStyle.Render("> ")
		nameStyle = selectorSelectedStyle
	}

	if isNew {
		return cursor + nameStyle.Render("🆕 Start New Chat")
	}

	name := strings.TrimSuffix(d.Filename, ".json")
	line := cursor + nameStyle.Render(name)

	if d.Preview != "" {
		preview := truncateContent(d.Preview, 40)
		line += hintStyle.Render("  " + preview)
	}
	if !d.Meta.LastModified.IsZero() {
		line += selectorTimeStyle.Render("  " + d.Meta.LastModified.Format("01/02 15:04"))
	}
	return line
}

func (m SelectorModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := strings.Join(items, "  |  ")
	return selectorStatusStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// Result returns the selected filename (empty for a new session), whether
// the new-session row was picked, and whether the user confirmed at all.
func (m SelectorModel) Result() (string, bool, bool) {
	return m.selected, m.isNew, m.confirmed
}

// SelectorResult is the outcome of running the session selector.
type SelectorResult struct {
	Filename  string // empty for a new session
	IsNew     bool   // true when "Start New Chat" was picked
	Confirmed bool   // false when the user backed out
}

// RunSelector starts the selector TUI and returns the user's choice.
func RunSelector(store SessionStore, modelName, project string) (SelectorResult, error) {
	m := NewSelectorModel(store, modelName, project)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return SelectorResult{}, err
	}

	if sm, ok := finalModel.(SelectorModel); ok {
		filename, isNew, confirmed := sm.Result()
		return SelectorResult{Filename: filename, IsNew: isNew, Confirmed: confirmed}, nil
	}
	return SelectorResult{}, nil
}

// AskNewSession asks the original's two new-session questions. Empty
// answers keep the defaults (no system prompt, timestamp filename).
func AskNewSession() (systemPrompt, name string, err error) {
	systemPrompt, err = readline.Line("System prompt (optional): ")
	if err != nil {
		return "", "", err
	}
	name, err = readline.Line("Session name (optional): ")
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(systemPrompt), strings.TrimSpace(name), nil
}
