package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/go-builderdata/internal/processor"
)

type rowDoneMsg processor.Event

type finishedMsg struct{}

// ProgressModel renders a progress bar with the row counters and the name of
// the last finished project.
type ProgressModel struct {
	bar      progress.Model
	total    int
	done     int
	skipped  int
	current  string
	finished bool
}

// NewProgressModel creates a model for total rows.
func NewProgressModel(total int) ProgressModel {
	return ProgressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowDoneMsg:
		m.done++
		if msg.Skipped {
			m.skipped++
		}
		m.current = msg.Name
	case finishedMsg:
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(40, max(10, msg.Width-40))
	}
	return m, nil
}

// Percent is the completed share of rows.
func (m ProgressModel) Percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(m.bar.ViewAs(m.Percent()))
	b.WriteString(fmt.Sprintf(" %d/%d rows", m.done, m.total))
	if m.skipped > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(" · %d skipped", m.skipped)))
	}
	if m.current != "" && !m.finished {
		b.WriteString(SubtleStyle.Render("  " + m.current))
	}
	b.WriteString("\n")

	return b.String()
}

// ProgressReporter drives a ProgressModel from processor events. The
// bubbletea program runs in its own goroutine and only receives messages.
type ProgressReporter struct {
	out     io.Writer
	opts    []tea.ProgramOption
	program *tea.Program
	wg      sync.WaitGroup
}

// NewProgressReporter writes the progress bar to out.
func NewProgressReporter(out io.Writer, opts ...tea.ProgramOption) *ProgressReporter {
	return &ProgressReporter{out: out, opts: opts}
}

func (r *ProgressReporter) Start(total int) {
	opts := append([]tea.ProgramOption{
		tea.WithOutput(r.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, r.opts...)

	r.program = tea.NewProgram(NewProgressModel(total), opts...)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_, _ = r.program.Run()
	}()
}

func (r *ProgressReporter) Advance(ev processor.Event) {
	if r.program == nil {
		return
	}
	r.program.Send(rowDoneMsg(ev))
}

// Finish stops the program and waits until the last frame is drawn.
func (r *ProgressReporter) Finish() {
	if r.program == nil {
		return
	}
	r.program.Send(finishedMsg{})
	r.wg.Wait()
	r.program = nil
}
