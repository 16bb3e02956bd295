package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	keyMap := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keyMap.Up},
		{"Down", keyMap.Down},
		{"PageUp", keyMap.PageUp},
		{"PageDown", keyMap.PageDown},
		{"Home", keyMap.Home},
		{"End", keyMap.End},
		{"PrevCategory", keyMap.PrevCategory},
		{"NextCategory", keyMap.NextCategory},
		{"ToggleHidden", keyMap.ToggleHidden},
		{"ToggleShortcut", keyMap.ToggleShortcut},
		{"Toggle", keyMap.Toggle},
		{"SelectAll", keyMap.SelectAll},
		{"DeselectAll", keyMap.DeselectAll},
		{"Install", keyMap.Install},
		{"Yes", keyMap.Yes},
		{"No", keyMap.No},
		{"Dismiss", keyMap.Dismiss},
		{"Help", keyMap.Help},
		{"Quit", keyMap.Quit},
	}

	for _, binding := range bindings {
		if len(binding.binding.Keys()) == 0 {
			t.Errorf("%s binding should have keys", binding.name)
		}
		if binding.binding.Help().Key == "" {
			t.Errorf("%s binding should have help key", binding.name)
		}
		if binding.binding.Help().Desc == "" {
			t.Errorf("%s binding should have help description", binding.name)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	keyMap := DefaultKeyMap()
	if len(keyMap.ShortHelp()) == 0 {
		t.Fatalf("short help should not be empty")
	}
	if len(keyMap.FullHelp()) == 0 {
		t.Fatalf("full help should not be empty")
	}
}
