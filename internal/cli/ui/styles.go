package ui

import "github.com/charmbracelet/lipgloss"

// panelWidth bounds both the message panels and the history table cells.
const panelWidth = 60

var (
	green  = lipgloss.Color("42")
	red    = lipgloss.Color("196")
	gray   = lipgloss.Color("245")
	cyan   = lipgloss.Color("86")
	blue   = lipgloss.Color("39")
	pink   = lipgloss.Color("212")
	yellow = lipgloss.Color("229")
)

// Styles holds every lipgloss style histctl renders with
var Styles = struct {
	Bold     lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Muted    lipgloss.Style
	Summary  lipgloss.Style
	OKPanel  lipgloss.Style
	ErrPanel lipgloss.Style
	// Roles 按 Turn.Role 着色，未知角色走 Cell
	Roles map[string]lipgloss.Style
}{
	Bold:     lipgloss.NewStyle().Bold(true),
	Header:   lipgloss.NewStyle().Foreground(cyan).Bold(true).Padding(0, 1),
	Cell:     lipgloss.NewStyle().Padding(0, 1),
	Muted:    lipgloss.NewStyle().Foreground(gray),
	Summary:  lipgloss.NewStyle().Foreground(gray).MarginTop(1),
	OKPanel:  panel(green),
	ErrPanel: panel(red),
	Roles: map[string]lipgloss.Style{
		"Human":  lipgloss.NewStyle().Foreground(blue).Padding(0, 1),
		"AI":     lipgloss.NewStyle().Foreground(pink).Bold(true).Padding(0, 1),
		"System": lipgloss.NewStyle().Foreground(yellow).Padding(0, 1),
	},
}

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(panelWidth)
}

// roleStyle falls back to the plain cell style for roles the server may add later.
func roleStyle(role string) lipgloss.Style {
	if s, ok := Styles.Roles[role]; ok {
		return s
	}
	return Styles.Cell
}
