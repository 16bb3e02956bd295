package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tyemirov/teaminstall/internal/installation"
)

const maxConfirmRows = 10

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case ScreenConfirm:
		return AppStyle.Render(m.renderConfirm())
	case ScreenProcessing:
		return AppStyle.Render(m.renderProcessing())
	case ScreenNotice:
		return AppStyle.Render(m.renderNotice())
	}
	return AppStyle.Render(m.renderBrowse())
}

func (m *Model) renderBrowse() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Certificate installer"))
	b.WriteString("\n")
	b.WriteString(m.renderCategories())
	b.WriteString("\n")
	b.WriteString(RenderCheckbox(m.showHidden) + " Show inactive offices   ")
	b.WriteString(RenderCheckbox(m.createShortcuts) + " Create desktop shortcuts")
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderCategories() string {
	parts := []string{LabelStyle.Render("Filter:")}
	for index, category := range m.categories {
		if index == m.categoryIndex {
			parts = append(parts, ActiveCategoryStyle.Render(category))
			continue
		}
		parts = append(parts, CategoryStyle.Render(category))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Warning).Render("Confirm installation"))
	b.WriteString("\n\n")
	shown := m.pending[:min(len(m.pending), maxConfirmRows)]
	b.WriteString(installation.ConfirmationText(shown))
	b.WriteString("\n")
	if hiddenCount := len(m.pending) - len(shown); hiddenCount > 0 {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("  ... and %d more\n", hiddenCount)))
	}
	if m.createShortcuts {
		b.WriteString(MutedStyle.Render("\nDesktop shortcuts will be created."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	yes, no := ItemStyle.Render("Yes"), ItemStyle.Render("No")
	if m.confirmCursor == 0 {
		yes = CursorItemStyle.Render("Yes")
	} else {
		no = CursorItemStyle.Render("No")
	}
	b.WriteString(yes + "  " + no)
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render("y/n • ←/→ choose • enter confirm"))
	return DialogStyle(Warning).Render(b.String())
}

func (m *Model) renderProcessing() string {
	body := fmt.Sprintf("%s %s", m.spinner.View(), m.status)
	return DialogStyle(Primary).Render(body)
}

func (m *Model) renderNotice() string {
	color := Success
	if m.notice.Kind == NoticeFailure {
		color = Error
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(m.notice.Title))
	b.WriteString("\n\n")
	b.WriteString(m.notice.Body)
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render("enter to continue"))
	return DialogStyle(color).Render(b.String())
}
