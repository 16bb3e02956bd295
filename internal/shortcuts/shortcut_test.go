package shortcuts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/teaminstall/internal/certificates"
)

func TestSanitizeName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain ascii", input: "Team_Office A", expected: "Team_Office A"},
		{name: "path separators dropped", input: `Team_A/B\C:D`, expected: "Team_ABCD"},
		{name: "punctuation dropped", input: "Team_Office (DB1)!", expected: "Team_Office DB1"},
		{name: "japanese letters kept", input: "Team_東京事業所", expected: "Team_東京事業所"},
		{name: "numeric symbols kept", input: "Team_Room ² ½", expected: "Team_Room ² ½"},
		{name: "trailing whitespace trimmed", input: "Team_Office ?  ", expected: "Team_Office"},
		{name: "nothing left", input: "?*:", expected: ""},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testingT *testing.T) {
			actual := SanitizeName(testCase.input)
			if actual != testCase.expected {
				testingT.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	testCases := []struct {
		name     string
		baseURL  string
		route    string
		expected string
	}{
		{name: "defaults", baseURL: DefaultBaseURL, route: DefaultRoute, expected: "https://care1.allm-team.net/7/CareUiAuth/login"},
		{name: "extra slashes", baseURL: "https://example.test/", route: "/login", expected: "https://example.test/7/login"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testingT *testing.T) {
			actual := BuildURL(testCase.baseURL, "7", testCase.route)
			if actual != testCase.expected {
				testingT.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestCreatorWritesInternetShortcut(t *testing.T) {
	desktopDirectory := filepath.Join(t.TempDir(), "Desktop")
	creator := NewCreator(certificates.NewOperatingSystemFileSystem(), func() (string, error) {
		return desktopDirectory, nil
	}, Configuration{})

	shortcut, err := creator.Create("Office/7", "7")
	if err != nil {
		t.Fatalf("create shortcut: %v", err)
	}
	expectedPath := filepath.Join(desktopDirectory, "Team_Office7.url")
	if shortcut.Path != expectedPath {
		t.Fatalf("expected %s, got %s", expectedPath, shortcut.Path)
	}
	if shortcut.Replaced {
		t.Fatalf("expected a new shortcut")
	}
	content, readErr := os.ReadFile(expectedPath)
	if readErr != nil {
		t.Fatalf("read shortcut: %v", readErr)
	}
	expectedContent := "[InternetShortcut]\r\nURL=https://care1.allm-team.net/7/CareUiAuth/login\r\n"
	if string(content) != expectedContent {
		t.Fatalf("unexpected content %q", string(content))
	}

	second, err := creator.Create("Office/7", "7")
	if err != nil {
		t.Fatalf("recreate shortcut: %v", err)
	}
	if !second.Replaced {
		t.Fatalf("expected existing shortcut to be reported as replaced")
	}
}

func TestCreatorErrors(t *testing.T) {
	resolveErr := errors.New("no desktop")
	testCases := []struct {
		name          string
		label         string
		configuration Configuration
		resolver      DesktopResolver
		expectedErr   error
	}{
		{
			name:          "empty name",
			label:         "???",
			configuration: Configuration{NamePrefix: "!"},
			resolver:      func() (string, error) { return t.TempDir(), nil },
			expectedErr:   ErrEmptyName,
		},
		{
			name:        "desktop resolution fails",
			label:       "Office",
			resolver:    func() (string, error) { return "", resolveErr },
			expectedErr: resolveErr,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testingT *testing.T) {
			creator := NewCreator(certificates.NewOperatingSystemFileSystem(), testCase.resolver, testCase.configuration)
			_, err := creator.Create(testCase.label, "1")
			if !errors.Is(err, testCase.expectedErr) {
				testingT.Fatalf("expected %v, got %v", testCase.expectedErr, err)
			}
		})
	}
}

func TestDesktopDirectoryIsAbsolute(t *testing.T) {
	desktopDirectory, err := DesktopDirectory()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !filepath.IsAbs(desktopDirectory) {
		t.Fatalf("expected absolute desktop directory, got %s", desktopDirectory)
	}
}
