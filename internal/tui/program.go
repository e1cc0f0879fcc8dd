package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbletea"
)

// Start runs the progress view on out in the background. The returned
// function stops the view and waits until the terminal is restored.
func Start(ctx context.Context, tape TapeSource, out io.Writer, opts ...tea.ProgramOption) (stop func()) {
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, opts...)
	p := tea.NewProgram(NewModel(tape), opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	return func() {
		p.Quit()
		<-done
	}
}
