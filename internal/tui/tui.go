package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func NewApp() *Model {
	return &Model{
		state:     StateAuth,
		auth:      NewAuthModel(),
		adventure: NewAdventureModel(),
		api:       NewAPIClient(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.ws != nil {
				m.ws.Close()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case AuthSuccessMsg:
		m.ws = NewWSClient(msg.token)
		return m, m.ws.ConnectCmd()

	case ConnectedMsg:
		m.state = StateAdventure

		// the last window size arrived while the auth screen was up
		if m.width > 0 {
			m.adventure, _ = m.adventure.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height}, m.ws)
		}

		return m, tea.Batch(
			m.adventure.Init(),
			fetchHistory(m.api),
			m.ws.ReceiveCmd(),
		)

	case ConnectErrorMsg:
		m.state = StateAuth
		m.auth.submitting = false
		m.auth.status = fmt.Sprintf("connection failed: %v", msg.err)
		return m, nil

	case DisconnectedMsg:
		reason := msg.reason
		if reason == "" {
			reason = "connection closed"
		}
		m.err = fmt.Errorf("%s", reason)
		return m, nil

	case TurnReplyMsg, TurnFailedMsg:
		// keep listening for the next server message
		var cmd tea.Cmd
		m.adventure, cmd = m.adventure.Update(msg, m.ws)
		return m, tea.Batch(cmd, m.ws.ReceiveCmd())
	}

	switch m.state {
	case StateAuth:
		return m.updateAuth(msg)

	case StateAdventure:
		return m.updateAdventure(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateAuth:
		return m.auth.View(m.width)

	case StateAdventure:
		return m.adventure.View()

	default:
		return "Unknown state"
	}
}

func (m *Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.auth, cmd = m.auth.Update(msg, m.api)

	return m, cmd
}

func (m *Model) updateAdventure(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.adventure, cmd = m.adventure.Update(msg, m.ws)

	return m, cmd
}

// returns a tea.Cmd that loads the stored conversation
func fetchHistory(api *APIClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiRequestTimeout)
		defer cancel()

		entries, err := api.FetchHistory(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return HistoryMsg{entries: entries}
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to exit\n", err)
}
