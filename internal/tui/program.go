package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the installer on the terminal and blocks until the operator quits.
func Run(ctx context.Context, model *Model, input io.Reader, output io.Writer) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(input),
		tea.WithOutput(output),
	)
	_, err := program.Run()
	return err
}
