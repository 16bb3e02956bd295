package truststore

import (
	"fmt"
	"strings"
)

// Kind classifies an import failure.
type Kind int

const (
	// KindUnexpected covers every failure that is neither a missing tool nor an exit status.
	KindUnexpected Kind = iota
	// KindToolNotFound means the import tool is not installed.
	KindToolNotFound
	// KindExitStatus means the import tool ran and exited with a non-zero status.
	KindExitStatus
)

func (kind Kind) String() string {
	switch kind {
	case KindToolNotFound:
		return "tool not found"
	case KindExitStatus:
		return "exit status"
	default:
		return "unexpected"
	}
}

// ImportError describes a failed import.
type ImportError struct {
	Kind     Kind
	Tool     string
	ExitCode int
	Detail   string
	Err      error
}

func (importErr *ImportError) Error() string {
	switch importErr.Kind {
	case KindToolNotFound:
		return fmt.Sprintf("%s not found", importErr.Tool)
	case KindExitStatus:
		if importErr.Detail == "" {
			return fmt.Sprintf("%s exited with status %d", importErr.Tool, importErr.ExitCode)
		}
		return fmt.Sprintf("%s exited with status %d: %s", importErr.Tool, importErr.ExitCode, importErr.Detail)
	default:
		if importErr.Err == nil {
			return fmt.Sprintf("%s failed: %s", importErr.Tool, importErr.Detail)
		}
		return fmt.Sprintf("%s failed: %v", importErr.Tool, importErr.Err)
	}
}

func (importErr *ImportError) Unwrap() error {
	return importErr.Err
}

// diagnosticText prefers stderr and falls back to stdout.
func diagnosticText(stdout string, stderr string) string {
	trimmedStderr := strings.TrimSpace(stderr)
	if trimmedStderr != "" {
		return trimmedStderr
	}
	return strings.TrimSpace(stdout)
}
