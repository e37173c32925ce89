package app

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xctestgo/internal/color"
	"xctestgo/internal/engine"
	"xctestgo/internal/observe"
	"xctestgo/internal/report"
	"xctestgo/internal/report/tui"
	"xctestgo/internal/result"
	"xctestgo/pkg/xlog"
)

// runCLIMode wires the default textual observer to stdout and runs the
// suite synchronously to completion.
func (a *Application) runCLIMode(ctx context.Context, hub *observe.Hub, root *engine.Suite) (result.Accumulator, error) {
	hub.Add(report.NewConsoleObserver(os.Stdout))

	hub.BundleWillStart(a.config.BundleName)
	record := root.Execute(hub)
	hub.BundleDidFinish(a.config.BundleName, record)

	return record, nil
}

// runTUIMode re-initializes xlog onto a channel so diagnostic log
// lines don't race the bubbletea repaint, starts the program, runs the
// suite on a background goroutine, and quits the program once the run
// finishes.
func (a *Application) runTUIMode(ctx context.Context, hub *observe.Hub, root *engine.Suite) (result.Accumulator, error) {
	logEntries := make(chan xlog.LogEntry, 64)
	level := xlog.LevelInfo
	if a.config.Debug {
		level = xlog.LevelDebug
	}
	xlog.InitForChannel(level, logEntries)
	color.Initialize(lipgloss.HasDarkBackground())

	model := tui.NewModel()
	program := tea.NewProgram(model)
	hub.Add(tui.NewObserver(program))

	resultCh := make(chan result.Accumulator, 1)
	go func() {
		hub.BundleWillStart(a.config.BundleName)
		record := root.Execute(hub)
		hub.BundleDidFinish(a.config.BundleName, record)
		resultCh <- record
		program.Send(tea.Quit())
	}()

	if _, err := program.Run(); err != nil {
		return nil, err
	}

	return <-resultCh, nil
}
