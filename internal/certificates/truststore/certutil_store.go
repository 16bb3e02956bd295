package truststore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tyemirov/teaminstall/internal/certificates"
)

const passwordMask = "********"

type certutilStore struct {
	commandRunner certificates.CommandRunner
	tool          string
}

func newCertutilStore(commandRunner certificates.CommandRunner, configuration Configuration) (Store, error) {
	if commandRunner == nil {
		return nil, errors.New("certutil store requires a command runner")
	}
	tool := strings.TrimSpace(configuration.Tool)
	if tool == "" {
		tool = DefaultImportTool
	}
	return &certutilStore{commandRunner: commandRunner, tool: tool}, nil
}

// ImportArguments returns the certutil arguments importing certificatePath into the user store.
func ImportArguments(certificatePath string, password string) []string {
	return []string{"-p", password, "-user", "-importpfx", certificatePath}
}

// DescribeImport renders the import command line with the password masked.
func DescribeImport(tool string, certificatePath string) string {
	if strings.TrimSpace(tool) == "" {
		tool = DefaultImportTool
	}
	return strings.Join(append([]string{tool}, ImportArguments(certificatePath, passwordMask)...), " ")
}

func (store *certutilStore) Import(ctx context.Context, certificatePath string, password string) (result ImportResult, importErr error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = ImportResult{}
			importErr = &ImportError{Kind: KindUnexpected, Tool: store.tool, Detail: fmt.Sprint(recovered)}
		}
	}()
	if certificatePath == "" {
		return ImportResult{}, &ImportError{Kind: KindUnexpected, Tool: store.tool, Err: errors.New("certificate path is required")}
	}
	commandResult, runErr := store.commandRunner.Run(ctx, store.tool, ImportArguments(certificatePath, password))
	if runErr == nil {
		return ImportResult{Output: strings.TrimSpace(commandResult.Stdout)}, nil
	}
	if errors.Is(runErr, certificates.ErrExecutableNotFound) {
		return ImportResult{}, &ImportError{Kind: KindToolNotFound, Tool: store.tool, Err: runErr}
	}
	var exitStatusErr *certificates.ExitStatusError
	if errors.As(runErr, &exitStatusErr) {
		return ImportResult{}, &ImportError{
			Kind:     KindExitStatus,
			Tool:     store.tool,
			ExitCode: exitStatusErr.Result.ExitCode,
			Detail:   diagnosticText(exitStatusErr.Result.Stdout, exitStatusErr.Result.Stderr),
			Err:      runErr,
		}
	}
	return ImportResult{}, &ImportError{Kind: KindUnexpected, Tool: store.tool, Err: runErr}
}
