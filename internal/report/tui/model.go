// Package tui is an optional live-progress observer, driven by the
// same ObservationHub callbacks the default console reporter consumes,
// rendered with bubbletea/bubbles/lipgloss instead of plain writes.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"xctestgo/internal/classify"
	"xctestgo/internal/color"
	"xctestgo/internal/observe"
	"xctestgo/internal/result"
)

var (
	palette      = color.GetProfile()
	styleRunning = lipgloss.NewStyle().Foreground(palette.Warning)
	stylePass    = lipgloss.NewStyle().Foreground(palette.Success)
	styleFail    = lipgloss.NewStyle().Foreground(palette.Error).Bold(true)
	styleSkip    = lipgloss.NewStyle().Foreground(palette.Info)
	styleDim     = lipgloss.NewStyle().Foreground(palette.Muted)
)

type caseLine struct {
	name     string
	failed   bool
	skipped  bool
	failures []string
}

type msg struct {
	kind caseEventKind
	name string
	text string
}

type caseEventKind int

const (
	eventCaseStart caseEventKind = iota
	eventCaseDone
	eventCaseFail
	eventCaseSkip
	eventBundleDone
)

// maxNameWidth bounds a rendered case name so a long ClassName.method
// does not wrap the terminal mid-line; go-runewidth accounts for
// double-width runes that len() would undercount.
const maxNameWidth = 60

func truncateName(name string) string {
	if runewidth.StringWidth(name) <= maxNameWidth {
		return name
	}
	return runewidth.Truncate(name, maxNameWidth, "…")
}

// Model is the bubbletea model backing the live-progress TUI.
type Model struct {
	lines    []caseLine
	current  string
	started  time.Time
	finished bool
	summary  string
	spinner  spinner.Model
}

// NewModel constructs an empty, not-yet-started Model.
func NewModel() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleRunning
	return &Model{started: time.Now(), spinner: s}
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd { return m.spinner.Tick }

// Update satisfies tea.Model.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := message.(type) {
	case msg:
		switch ev.kind {
		case eventCaseStart:
			m.current = ev.name
			m.lines = append(m.lines, caseLine{name: ev.name})
		case eventCaseDone:
			m.current = ""
		case eventCaseFail:
			for i := range m.lines {
				if m.lines[i].name == ev.name {
					m.lines[i].failed = true
					m.lines[i].failures = append(m.lines[i].failures, ev.text)
				}
			}
		case eventCaseSkip:
			for i := range m.lines {
				if m.lines[i].name == ev.name {
					m.lines[i].skipped = true
				}
			}
		case eventBundleDone:
			m.finished = true
			m.summary = ev.text
		}
		return m, nil
	case tea.KeyMsg:
		if ev.String() == "ctrl+c" || ev.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd
	}
}

// View satisfies tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	for _, l := range m.lines {
		name := truncateName(l.name)
		switch {
		case l.failed:
			fmt.Fprintf(&b, "%s %s\n", styleFail.Render("FAIL"), name)
			for _, f := range l.failures {
				fmt.Fprintf(&b, "       %s\n", styleDim.Render(f))
			}
		case l.skipped:
			fmt.Fprintf(&b, "%s %s\n", styleSkip.Render("SKIP"), name)
		default:
			fmt.Fprintf(&b, "%s %s\n", stylePass.Render("PASS"), name)
		}
	}
	if m.current != "" {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), truncateName(m.current))
	}
	if m.finished {
		b.WriteString("\n" + m.summary + "\n")
	}
	return b.String()
}

// Observer bridges ObservationHub callbacks onto a bubbletea program by
// sending tea.Msg values over its update channel.
type Observer struct {
	observe.BaseObserver
	program *tea.Program
	started time.Time
}

// NewObserver constructs an Observer that drives program.
func NewObserver(program *tea.Program) *Observer {
	return &Observer{program: program}
}

func (o *Observer) BundleWillStart(bundleName string) { o.started = time.Now() }

func (o *Observer) CaseWillStart(caseName string) {
	o.program.Send(msg{kind: eventCaseStart, name: caseName})
}

func (o *Observer) CaseDidFinish(caseName string, record result.Accumulator) {
	o.program.Send(msg{kind: eventCaseDone, name: caseName})
}

func (o *Observer) CaseDidFail(caseName, description string, location classify.SourceLocation, expected bool) {
	o.program.Send(msg{kind: eventCaseFail, name: caseName, text: fmt.Sprintf("%s: %s", location.String(), description)})
}

func (o *Observer) CaseWasSkipped(caseName, description string, location classify.SourceLocation) {
	o.program.Send(msg{kind: eventCaseSkip, name: caseName, text: description})
}

func (o *Observer) BundleDidFinish(bundleName string, root result.Accumulator) {
	testDuration, _ := root.Duration()
	summary := fmt.Sprintf("Executed %d test(s), with %d test(s) skipped and %d failure(s) (%d unexpected) in %.3f (%.3f) seconds",
		root.ExecutionCount(), root.SkipCount(), root.TotalFailureCount(), root.UnexpectedFailureCount(),
		testDuration.Seconds(), time.Since(o.started).Seconds())
	o.program.Send(msg{kind: eventBundleDone, text: summary})
}

var _ observe.Observer = (*Observer)(nil)
