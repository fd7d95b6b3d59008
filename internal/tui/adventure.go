package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new adventure screen
func NewAdventureModel() *AdventureModel {
	input := textinput.New()
	input.Placeholder = "what do you do?"
	input.CharLimit = 0
	input.Prompt = "> "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorGold)

	return &AdventureModel{
		input:   input,
		spinner: sp,
	}
}

func (m *AdventureModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *AdventureModel) Update(msg tea.Msg, ws *WSClient) (*AdventureModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.waiting {
			action := strings.TrimSpace(m.input.Value())
			if action == "" {
				return m, nil
			}

			m.input.SetValue("")
			m.waiting = true
			m.status = ""
			m.appendEntry(StoryEntry{Role: "player", Content: action})

			return m, sendTurn(ws, action, m.lastReply)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8

		viewportHeight := msg.Height - 7
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}

		m.refreshViewport()

	case HistoryMsg:
		m.entries = msg.entries
		for i := len(msg.entries) - 1; i >= 0; i-- {
			if msg.entries[i].Role == "ai" {
				m.lastReply = msg.entries[i].Content
				break
			}
		}
		m.refreshViewport()

	case TurnReplyMsg:
		m.waiting = false
		m.lastReply = msg.reply
		m.appendEntry(StoryEntry{Role: "ai", Content: msg.reply})
		m.input.Focus()

	case TurnFailedMsg:
		m.waiting = false
		m.status = msg.message
		if m.status == "" {
			m.status = "the narrator faltered, try again"
		}
		m.input.Focus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if m.shouldScrollBottom {
		m.viewport.GotoBottom()
		m.shouldScrollBottom = false
	}

	return m, tea.Batch(cmds...)
}

func (m *AdventureModel) View() string {
	if !m.ready {
		return infoStyle.Render("\n  entering Eldoria...")
	}

	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorGold).
		Render("ELDORIA")

	help := helpStyle.Render("[Enter: Act] [PgUp/PgDn: Scroll] [Ctrl+C: Quit]")

	gap := m.width - lipgloss.Width(header) - lipgloss.Width(help) - 2
	if gap < 1 {
		gap = 1
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, header, strings.Repeat(" ", gap), help))
	b.WriteString("\n")

	b.WriteString(borderStyle.Width(m.width - 4).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(borderStyle.Width(m.width - 4).Padding(0, 1).Render(m.input.View()))
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View())
		b.WriteString(infoStyle.Render(" the narrator is thinking..."))
	} else if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
	}

	return b.String()
}

func (m *AdventureModel) appendEntry(entry StoryEntry) {
	m.entries = append(m.entries, entry)
	m.refreshViewport()
}

// rerenders the transcript into the viewport and pins it to the bottom
func (m *AdventureModel) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, entry := range m.entries {
		if entry.Role == "player" {
			b.WriteString(playerStyle.Render("> " + entry.Content))
		} else {
			b.WriteString(narratorStyle.Width(m.viewport.Width - 2).Render(entry.Content))
		}
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.shouldScrollBottom = true
}

// returns a tea.Cmd that submits a turn over the connection
func sendTurn(ws *WSClient, action, previousReply string) tea.Cmd {
	return func() tea.Msg {
		if err := ws.SendTurn(action, previousReply); err != nil {
			return TurnFailedMsg{message: err.Error()}
		}

		// the reply arrives through the receive loop
		return nil
	}
}
