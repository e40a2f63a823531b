package processor

// Event describes one finished row.
type Event struct {
	Line    int
	Name    string
	Project string
	Skipped bool
}

// Reporter receives progress notifications. Start is called once before the
// first row, Advance once per row and Finish once at the end of the run.
type Reporter interface {
	Start(total int)
	Advance(ev Event)
	Finish()
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Start(int)     {}
func (NopReporter) Advance(Event) {}
func (NopReporter) Finish()       {}
