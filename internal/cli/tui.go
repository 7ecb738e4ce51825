package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbrahmapurd/japa/internal/tui"
)

type TuiCmd struct {
	Counter string `help:"Counter name or ID to open (default: active counter)."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Service, counter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
