package tui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/go-builderdata/internal/processor"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m ProgressModel, msg tea.Msg) ProgressModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModel_CountsRows(t *testing.T) {
	m := NewProgressModel(4)
	require.Zero(t, m.Percent())

	m = update(t, m, rowDoneMsg(processor.Event{Line: 2, Name: "Ethereum", Project: "ethereum"}))
	m = update(t, m, rowDoneMsg(processor.Event{Line: 3, Name: "Ghost", Skipped: true}))

	require.Equal(t, 0.5, m.Percent())
	view := m.View()
	require.Contains(t, view, "2/4 rows")
	require.Contains(t, view, "1 skipped")
	require.Contains(t, view, "Ghost")
}

func TestProgressModel_FinishQuits(t *testing.T) {
	m := NewProgressModel(1)
	next, cmd := m.Update(finishedMsg{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, next.(ProgressModel).finished)
}

func TestProgressModel_EmptyRun(t *testing.T) {
	m := NewProgressModel(0)
	require.Equal(t, 1.0, m.Percent())
	require.Contains(t, m.View(), "0/0 rows")
}

func TestProgressReporter_RunsToCompletion(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.Start(2)
	r.Advance(processor.Event{Line: 2, Name: "Uniswap", Project: "uniswap"})
	r.Advance(processor.Event{Line: 3, Name: "Aave", Project: "aave"})
	r.Finish()

	require.Nil(t, r.program)
	require.Contains(t, out.String(), "2/2 rows")
}

func TestProgressReporter_FinishWithoutStart(t *testing.T) {
	r := NewProgressReporter(&bytes.Buffer{})
	r.Advance(processor.Event{Line: 2})
	r.Finish()
}
