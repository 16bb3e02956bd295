//go:build windows

package shortcuts

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	userShellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`
	desktopValueName    = "Desktop"
)

// platformDesktopDirectory reads the redirected desktop location, which may
// point at a OneDrive folder, from the user shell folders key.
func platformDesktopDirectory() (string, bool) {
	key, openErr := registry.OpenKey(registry.CURRENT_USER, userShellFoldersKey, registry.QUERY_VALUE)
	if openErr != nil {
		return "", false
	}
	defer key.Close()
	value, _, valueErr := key.GetStringValue(desktopValueName)
	if valueErr != nil {
		return "", false
	}
	expanded, expandErr := registry.ExpandString(value)
	if expandErr != nil {
		return "", false
	}
	expanded = strings.TrimSpace(expanded)
	if expanded == "" {
		return "", false
	}
	return expanded, true
}
