package shortcuts

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tyemirov/teaminstall/internal/certificates"
)

const (
	// DefaultNamePrefix tags every shortcut created by this tool.
	DefaultNamePrefix = "Team_"
	// DefaultBaseURL is the login host.
	DefaultBaseURL = "https://care1.allm-team.net"
	// DefaultRoute is the login path appended after the identifier.
	DefaultRoute = "CareUiAuth/login"
	// FileExtension is the Internet Shortcut extension.
	FileExtension = ".url"

	desktopDirectoryPermissions = 0o755
	shortcutFilePermissions     = 0o644
)

// ErrEmptyName reports a label that sanitizes to nothing.
var ErrEmptyName = errors.New("shortcut name is empty after sanitizing")

// DesktopResolver returns the directory shortcuts are written to.
type DesktopResolver func() (string, error)

// Configuration controls shortcut naming and targets.
type Configuration struct {
	NamePrefix string
	BaseURL    string
	Route      string
}

// Shortcut describes a written shortcut file.
type Shortcut struct {
	Path     string
	URL      string
	Replaced bool
}

// Creator writes Internet Shortcut files to the desktop.
type Creator struct {
	fileSystem     certificates.FileSystem
	resolveDesktop DesktopResolver
	configuration  Configuration
}

// NewCreator constructs a Creator; empty configuration fields take the defaults.
func NewCreator(fileSystem certificates.FileSystem, resolveDesktop DesktopResolver, configuration Configuration) *Creator {
	if configuration.NamePrefix == "" {
		configuration.NamePrefix = DefaultNamePrefix
	}
	if strings.TrimSpace(configuration.BaseURL) == "" {
		configuration.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(configuration.Route) == "" {
		configuration.Route = DefaultRoute
	}
	if resolveDesktop == nil {
		resolveDesktop = DesktopDirectory
	}
	return &Creator{fileSystem: fileSystem, resolveDesktop: resolveDesktop, configuration: configuration}
}

// Create writes <desktop>/<prefix+label>.url pointing at the login page of identifier.
// An existing file with the same name is replaced.
func (creator *Creator) Create(label string, identifier string) (Shortcut, error) {
	name := SanitizeName(creator.configuration.NamePrefix + label)
	if name == "" {
		return Shortcut{}, fmt.Errorf("%w: %q", ErrEmptyName, label)
	}
	desktopDirectory, desktopErr := creator.resolveDesktop()
	if desktopErr != nil {
		return Shortcut{}, fmt.Errorf("resolve desktop directory: %w", desktopErr)
	}
	if err := creator.fileSystem.EnsureDirectory(desktopDirectory, desktopDirectoryPermissions); err != nil {
		return Shortcut{}, fmt.Errorf("ensure desktop directory: %w", err)
	}
	shortcutPath := filepath.Join(desktopDirectory, name+FileExtension)
	replaced, existsErr := creator.fileSystem.FileExists(shortcutPath)
	if existsErr != nil {
		return Shortcut{}, fmt.Errorf("check shortcut %s: %w", shortcutPath, existsErr)
	}
	targetURL := BuildURL(creator.configuration.BaseURL, identifier, creator.configuration.Route)
	if err := creator.fileSystem.WriteFile(shortcutPath, Content(targetURL), shortcutFilePermissions); err != nil {
		return Shortcut{}, fmt.Errorf("write shortcut %s: %w", shortcutPath, err)
	}
	return Shortcut{Path: shortcutPath, URL: targetURL, Replaced: replaced}, nil
}

// SanitizeName keeps letters, numbers, spaces, underscores and hyphens, then trims trailing whitespace.
func SanitizeName(name string) string {
	var builder strings.Builder
	for _, character := range name {
		if unicode.IsLetter(character) || unicode.IsNumber(character) || character == ' ' || character == '_' || character == '-' {
			builder.WriteRune(character)
		}
	}
	return strings.TrimRightFunc(builder.String(), unicode.IsSpace)
}

// BuildURL joins base, identifier and route with single slashes.
func BuildURL(baseURL string, identifier string, route string) string {
	return strings.TrimRight(baseURL, "/") + "/" + identifier + "/" + strings.TrimLeft(route, "/")
}

// Content renders the Internet Shortcut file body.
func Content(targetURL string) []byte {
	return []byte(fmt.Sprintf("[InternetShortcut]\r\nURL=%s\r\n", targetURL))
}
