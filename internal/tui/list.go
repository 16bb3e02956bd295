package tui

import (
	"fmt"
	"strings"

	"github.com/tyemirov/teaminstall/internal/selection"
)

const defaultListHeight = 15

// RecordList is a multi-select list of displayed rows.
type RecordList struct {
	Rows     []selection.Row
	Cursor   int
	Height   int
	selected map[int]bool
}

// NewRecordList creates an empty list.
func NewRecordList() *RecordList {
	return &RecordList{Height: defaultListHeight, selected: map[int]bool{}}
}

// SetRows replaces the rows and clears the selection.
func (l *RecordList) SetRows(rows []selection.Row) {
	l.Rows = rows
	l.selected = map[int]bool{}
	if l.Cursor >= len(rows) {
		l.Cursor = max(0, len(rows)-1)
	}
}

// MoveUp moves cursor up
func (l *RecordList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *RecordList) MoveDown() {
	if l.Cursor < len(l.Rows)-1 {
		l.Cursor++
	}
}

func (l *RecordList) pageSize() int {
	if l.Height < 1 {
		return defaultListHeight
	}
	return l.Height
}

// PageUp moves cursor up by a page
func (l *RecordList) PageUp() {
	l.Cursor = max(0, l.Cursor-l.pageSize())
}

// PageDown moves cursor down by a page
func (l *RecordList) PageDown() {
	l.Cursor = min(max(0, len(l.Rows)-1), l.Cursor+l.pageSize())
}

// GoToFirst moves cursor to the first row
func (l *RecordList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last row
func (l *RecordList) GoToLast() {
	if len(l.Rows) > 0 {
		l.Cursor = len(l.Rows) - 1
	}
}

// Toggle toggles selection of the row under the cursor.
func (l *RecordList) Toggle() {
	if l.Cursor < 0 || l.Cursor >= len(l.Rows) {
		return
	}
	if l.selected[l.Cursor] {
		delete(l.selected, l.Cursor)
		return
	}
	l.selected[l.Cursor] = true
}

// SelectAll selects every displayed row.
func (l *RecordList) SelectAll() {
	for index := range l.Rows {
		l.selected[index] = true
	}
}

// DeselectAll clears the selection.
func (l *RecordList) DeselectAll() {
	l.selected = map[int]bool{}
}

// IsSelected reports whether row index is selected.
func (l *RecordList) IsSelected(index int) bool {
	return l.selected[index]
}

// SelectedRows returns the selected row indexes in display order.
func (l *RecordList) SelectedRows() []int {
	rows := []int{}
	for index := range l.Rows {
		if l.selected[index] {
			rows = append(rows, index)
		}
	}
	return rows
}

// View renders the visible window of rows around the cursor.
func (l *RecordList) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Certificates (%d)", len(l.Rows))
	if selectedCount := len(l.SelectedRows()); selectedCount > 0 {
		title = fmt.Sprintf("Certificates (%d/%d)", selectedCount, len(l.Rows))
	}
	b.WriteString(LabelStyle.Render(title))
	b.WriteString("\n")

	if len(l.Rows) == 0 {
		b.WriteString(ItemStyle.Render("No certificates match the filter"))
		return PanelStyle.Render(b.String())
	}

	visibleHeight := l.pageSize()
	startIndex := 0
	if l.Cursor >= visibleHeight {
		startIndex = l.Cursor - visibleHeight + 1
	}
	endIndex := min(startIndex+visibleHeight, len(l.Rows))

	if startIndex > 0 {
		b.WriteString(MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}
	for index := startIndex; index < endIndex; index++ {
		b.WriteString(l.renderRow(index))
		if index < endIndex-1 {
			b.WriteString("\n")
		}
	}
	if endIndex < len(l.Rows) {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("  ↓ more"))
	}
	return PanelStyle.Render(b.String())
}

func (l *RecordList) renderRow(index int) string {
	row := l.Rows[index]
	text := RenderCheckbox(l.selected[index]) + " " + row.Label
	if row.Label != row.Section {
		text += MutedStyle.Render(" [" + row.Section + "]")
	}
	if row.Hidden {
		text += MutedStyle.Render(" (inactive)")
	}
	if index == l.Cursor {
		return CursorItemStyle.Render(text)
	}
	return ItemStyle.Render(text)
}
