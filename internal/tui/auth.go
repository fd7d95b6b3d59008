package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new auth screen
func NewAuthModel() *AuthModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 20
	username.Width = 32
	username.Prompt = "> "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 32
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &AuthModel{
		username: username,
		password: password,
	}
}

func (m *AuthModel) Update(msg tea.Msg, api *APIClient) (*AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusIndex = (m.focusIndex + 1) % 2
			if m.focusIndex == 0 {
				m.username.Focus()
				m.password.Blur()
			} else {
				m.username.Blur()
				m.password.Focus()
			}
			return m, nil

		case "ctrl+s":
			m.signup = !m.signup
			m.status = ""
			return m, nil

		case "enter":
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()

			if username == "" || password == "" {
				m.status = "enter a username and password"
				return m, nil
			}

			m.submitting = true
			m.status = ""
			return m, submitAuth(api, m.signup, username, password)
		}

	case AuthFailedMsg:
		m.submitting = false
		m.status = msg.err.Error()
		return m, nil
	}

	var cmds [2]tea.Cmd
	m.username, cmds[0] = m.username.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)

	return m, tea.Batch(cmds[0], cmds[1])
}

func (m *AuthModel) View(width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Width(width).Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Width(width).Render("a text adventure"))
	b.WriteString("\n\n")

	mode := "sign in"
	if m.signup {
		mode = "create account"
	}

	usernameLabel := labelStyle
	passwordLabel := labelStyle
	if m.focusIndex == 0 {
		usernameLabel = labelFocusedStyle
	} else {
		passwordLabel = labelFocusedStyle
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		labelFocusedStyle.Render(mode),
		"",
		usernameLabel.Render("username"),
		m.username.View(),
		"",
		passwordLabel.Render("password"),
		m.password.View(),
	)

	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(form))
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(infoStyle.PaddingLeft(4).Render("contacting the realm..."))
	} else if m.status != "" {
		b.WriteString(errorStyle.PaddingLeft(4).Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.PaddingLeft(4).Render("[Tab: Switch Field] [Enter: Submit] [Ctrl+S: Toggle Signup] [Ctrl+C: Quit]"))

	return b.String()
}

// signs up first when in signup mode, then signs in either way
func submitAuth(api *APIClient, signup bool, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiRequestTimeout)
		defer cancel()

		if signup {
			if err := api.Signup(ctx, username, password); err != nil {
				return AuthFailedMsg{err: err}
			}
		}

		token, err := api.Signin(ctx, username, password)
		if err != nil {
			return AuthFailedMsg{err: err}
		}

		return AuthSuccessMsg{token: token, username: username}
	}
}
