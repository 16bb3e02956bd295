package shortcuts

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopDirectoryName = "Desktop"

// DesktopDirectory returns the current user's desktop, preferring the
// platform-specific location and falling back to ~/Desktop.
func DesktopDirectory() (string, error) {
	if desktopDirectory, found := platformDesktopDirectory(); found {
		return desktopDirectory, nil
	}
	return homeDesktopDirectory()
}

func homeDesktopDirectory() (string, error) {
	homeDirectory, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "", fmt.Errorf("resolve home directory: %w", homeErr)
	}
	return filepath.Join(homeDirectory, desktopDirectoryName), nil
}
