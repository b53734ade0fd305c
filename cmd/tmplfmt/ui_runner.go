package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tmplfmt/internal/driver"
	"tmplfmt/internal/source"
	"tmplfmt/internal/ui"
)

// uiMode is the --ui setting for the progress view.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModes = map[string]uiMode{"": uiAuto, "auto": uiAuto, "on": uiOn, "off": uiOff}

func parseUIMode(value string) (uiMode, error) {
	m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// drawsOn reports whether progress for the given number of inputs is drawn
// on out. Auto mode wants a terminal and more than one input.
func (m uiMode) drawsOn(out io.Writer, inputs int) bool {
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	}
	if inputs < 2 {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

type processOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI processes ids while a progress view is drawn on out.
func runWithUI(ctx context.Context, out io.Writer, fs *source.FileSet, opts driver.Options, ids []source.FileID) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.New(fs, opts).ProcessAll(ctx, ids)
		outcomeCh <- processOutcome{results: results, err: err}
		close(events)
	}()

	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = fs.Get(id).Path
	}

	model := ui.NewProgressModel("tmplfmt", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// the view may stop early; the pipeline must not block on a full channel
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
