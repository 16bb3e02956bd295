//go:build !windows

package shortcuts

func platformDesktopDirectory() (string, bool) {
	return "", false
}
