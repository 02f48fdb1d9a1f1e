package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"contractgen/internal/driver"
	"contractgen/internal/pipeline"
	"contractgen/internal/ui"
)

type runOutcome struct {
	results []*driver.PackageResult
	err     error
}

// runWithUI runs the driver while a progress view consumes its events.
func runWithUI(ctx context.Context, title string, dirs []string, opts driver.Options) ([]*driver.PackageResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Sink = pipeline.MultiSink{opts.Sink, pipeline.ChannelSink{Ch: events}}
		res, err := driver.Run(ctx, dirs, runOpts)
		outcomeCh <- runOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, dirs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
