package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGold      = lipgloss.Color("#D4AF37")
	colorGreen     = lipgloss.Color("#00FF00")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold).
			Align(lipgloss.Center).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Align(lipgloss.Center).
			MarginBottom(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	playerStyle = lipgloss.NewStyle().
			Foreground(colorGold).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ███████╗██╗     ██████╗  ██████╗ ██████╗ ██╗ █████╗
  ██╔════╝██║     ██╔══██╗██╔═══██╗██╔══██╗██║██╔══██╗
  █████╗  ██║     ██║  ██║██║   ██║██████╔╝██║███████║
  ██╔══╝  ██║     ██║  ██║██║   ██║██╔══██╗██║██╔══██║
  ███████╗███████╗██████╔╝╚██████╔╝██║  ██║██║██║  ██║
  ╚══════╝╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝
`
