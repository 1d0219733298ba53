package tui

import "github.com/charmbracelet/lipgloss"

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("147")).Bold(true).Padding(0, 1)
	tabBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	tabActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")).Padding(0, 1)

	paneStyle       = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	paneActiveStyle = paneStyle.BorderForeground(lipgloss.Color("62"))
	modalStyle      = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("62")).Padding(1, 2)

	labelStyle    = lipgloss.NewStyle().Bold(true)
	valueMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	helpBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
)
