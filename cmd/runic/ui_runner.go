package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"runic/internal/driver"
	"runic/internal/ui"
)

type tokenizeOutcome struct {
	results []driver.FileResult
	err     error
}

// runTokenizeWithUI запускает TokenizeAll в фоне и рисует прогресс в TUI.
// Модель завершится сама, когда канал событий закроется.
func runTokenizeWithUI(ctx context.Context, title string, files []string, rs *driver.RuleSet, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.TokenizeAll(ctx, files, rs, optsCopy)
		outcomeCh <- tokenizeOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
