package certificates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/tyemirov/teaminstall/internal/textenc"
)

// ErrExecutableNotFound reports that the requested executable is not installed.
var ErrExecutableNotFound = errors.New("executable not found")

// CommandResult captures what a finished child process reported.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitStatusError reports a child process that ran and exited with a non-zero status.
type ExitStatusError struct {
	Executable string
	Result     CommandResult
}

func (exitErr *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", exitErr.Executable, exitErr.Result.ExitCode)
}

// CommandRunner executes system commands.
type CommandRunner interface {
	Run(ctx context.Context, executable string, arguments []string) (CommandResult, error)
}

// ExecutableRunner executes commands using the local operating system.
// On Windows the child never opens a console window.
type ExecutableRunner struct{}

// NewExecutableRunner constructs an ExecutableRunner.
func NewExecutableRunner() ExecutableRunner {
	return ExecutableRunner{}
}

// Run executes the executable and blocks until it exits. Output is decoded as
// UTF-8 or, failing that, Shift-JIS.
func (executableRunner ExecutableRunner) Run(ctx context.Context, executable string, arguments []string) (CommandResult, error) {
	command := exec.CommandContext(ctx, executable, arguments...)
	configureCommand(command)
	var stdoutBuffer bytes.Buffer
	var stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	runErr := command.Run()
	result := CommandResult{
		Stdout: textenc.DecodeLenient(stdoutBuffer.Bytes()),
		Stderr: textenc.DecodeLenient(stderrBuffer.Bytes()),
	}
	if runErr == nil {
		return result, nil
	}
	if errors.Is(runErr, exec.ErrNotFound) {
		return result, fmt.Errorf("%w: %s", ErrExecutableNotFound, executable)
	}
	var processExitErr *exec.ExitError
	if errors.As(runErr, &processExitErr) {
		result.ExitCode = processExitErr.ExitCode()
		return result, &ExitStatusError{Executable: executable, Result: result}
	}
	return result, fmt.Errorf("execute %s: %w", executable, runErr)
}
