package tui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tyemirov/teaminstall/internal/selection"
)

func buildRows(count int) []selection.Row {
	rows := make([]selection.Row, 0, count)
	for index := range count {
		section := "Section" + string(rune('A'+index))
		rows = append(rows, selection.Row{RecordIndex: index, Section: section, Label: section})
	}
	return rows
}

func TestRecordListNavigation(t *testing.T) {
	list := NewRecordList()
	list.Height = 2
	list.SetRows(buildRows(5))

	list.MoveUp()
	if list.Cursor != 0 {
		t.Fatalf("cursor should stay at 0, got %d", list.Cursor)
	}
	list.MoveDown()
	list.MoveDown()
	if list.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", list.Cursor)
	}
	list.PageDown()
	if list.Cursor != 4 {
		t.Fatalf("expected cursor 4 after page down, got %d", list.Cursor)
	}
	list.MoveDown()
	if list.Cursor != 4 {
		t.Fatalf("cursor should stay at last row, got %d", list.Cursor)
	}
	list.PageUp()
	if list.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", list.Cursor)
	}
	list.GoToLast()
	if list.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", list.Cursor)
	}
	list.GoToFirst()
	if list.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", list.Cursor)
	}
}

func TestRecordListSelection(t *testing.T) {
	list := NewRecordList()
	list.SetRows(buildRows(3))

	list.Toggle()
	list.MoveDown()
	list.MoveDown()
	list.Toggle()
	if got := list.SelectedRows(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("unexpected selection %v", got)
	}
	list.Toggle()
	if list.IsSelected(2) {
		t.Fatalf("second toggle should deselect row 2")
	}
	list.SelectAll()
	if got := list.SelectedRows(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("unexpected selection after select all %v", got)
	}
	list.DeselectAll()
	if got := list.SelectedRows(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
}

func TestRecordListSetRowsClearsSelectionAndClampsCursor(t *testing.T) {
	list := NewRecordList()
	list.SetRows(buildRows(4))
	list.GoToLast()
	list.SelectAll()

	list.SetRows(buildRows(2))
	if list.Cursor != 1 {
		t.Fatalf("expected clamped cursor 1, got %d", list.Cursor)
	}
	if len(list.SelectedRows()) != 0 {
		t.Fatalf("selection should be cleared when rows change")
	}

	list.SetRows(nil)
	if list.Cursor != 0 {
		t.Fatalf("expected cursor 0 for empty list, got %d", list.Cursor)
	}
	list.Toggle()
	if len(list.SelectedRows()) != 0 {
		t.Fatalf("toggle on an empty list should select nothing")
	}
}

func TestRecordListView(t *testing.T) {
	testCases := []struct {
		name      string
		rows      []selection.Row
		expected  []string
		forbidden []string
	}{
		{
			name:     "empty",
			rows:     nil,
			expected: []string{"Certificates (0)", "No certificates match the filter"},
		},
		{
			name: "labels and markers",
			rows: []selection.Row{
				{RecordIndex: 0, Section: "OfficeA", Label: "Office A"},
				{RecordIndex: 1, Section: "OfficeB", Label: "OfficeB", Hidden: true},
			},
			expected:  []string{"Office A", "[OfficeA]", "OfficeB", "(inactive)"},
			forbidden: []string{"[OfficeB]"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			list := NewRecordList()
			list.SetRows(testCase.rows)
			view := list.View()
			for _, fragment := range testCase.expected {
				if !strings.Contains(view, fragment) {
					t.Fatalf("expected view to contain %q, got %q", fragment, view)
				}
			}
			for _, fragment := range testCase.forbidden {
				if strings.Contains(view, fragment) {
					t.Fatalf("expected view not to contain %q, got %q", fragment, view)
				}
			}
		})
	}
}

func TestRecordListViewScrollMarkers(t *testing.T) {
	list := NewRecordList()
	list.Height = 2
	list.SetRows(buildRows(5))
	list.MoveDown()
	list.MoveDown()

	view := list.View()
	if !strings.Contains(view, "↑ more") || !strings.Contains(view, "↓ more") {
		t.Fatalf("expected both scroll markers, got %q", view)
	}
	list.SelectAll()
	if !strings.Contains(list.View(), "Certificates (5/5)") {
		t.Fatalf("expected selected count in title")
	}
}
