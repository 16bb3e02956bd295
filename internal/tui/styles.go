package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#06B6D4")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")
	Border    = lipgloss.Color("#374151")
	Selected  = lipgloss.Color("#4F46E5")
	Light     = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	CursorItemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(Selected).
			Foreground(Light)

	ActiveCategoryStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Light).
				Background(Primary).
				Padding(0, 1)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1)

	CheckboxChecked   = lipgloss.NewStyle().Foreground(Success).Render("[✓]")
	CheckboxUnchecked = lipgloss.NewStyle().Foreground(Muted).Render("[ ]")
)

// RenderCheckbox renders a checkbox for a boolean value.
func RenderCheckbox(checked bool) string {
	if checked {
		return CheckboxChecked
	}
	return CheckboxUnchecked
}

// DialogStyle returns the bordered box used for confirmations and notices.
func DialogStyle(borderColor lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(70).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)
}
