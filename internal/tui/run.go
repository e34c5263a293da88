package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// New builds the Bubble Tea model for the given options.
func New(opts ...Option) (Model, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Suggestions == nil {
		return Model{}, fmt.Errorf("suggestion source is required")
	}
	if cfg.Results == nil {
		return Model{}, fmt.Errorf("result source is required")
	}

	return newModel(cfg), nil
}

// Run starts the interactive client and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, opts ...Option) error {
	opts = append([]Option{func(c *Config) { c.Context = ctx }}, opts...)
	m, err := New(opts...)
	if err != nil {
		return err
	}
	defer m.search.Close()
	defer m.results.Close()

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
