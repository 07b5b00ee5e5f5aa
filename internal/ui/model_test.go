package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/0xlemi/vocalnote/internal/analyzer"
)

func newTestModel(now *time.Time, onMute func(time.Duration)) Model {
	m := NewModel(5*time.Second, onMute)
	m.now = func() time.Time { return *now }
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestViewShowsAnalysis(t *testing.T) {
	now := time.Unix(0, 0)
	m := newTestModel(&now, nil)

	m = update(m, UpdateAnalysisMsg{Pitch: 440, Decibel: -12.5, Note: "A4", NoteValue: 10.0 / 12})
	view := m.View()

	assert.Contains(t, view, "A4")
	assert.Contains(t, view, "Pitch: 440.00 Hz")
	assert.Contains(t, view, "Level: -12.5 dB")
	assert.Contains(t, view, "0.833")
	assert.NotContains(t, view, "Listening")
}

func TestViewSharpNote(t *testing.T) {
	now := time.Unix(0, 0)
	m := newTestModel(&now, nil)

	m = update(m, UpdateAnalysisMsg{Pitch: 277.1, Note: "C#4", NoteValue: 2.0 / 12})
	view := m.View()

	assert.Contains(t, view, "#4")
	assert.Contains(t, view, "Pitch: 277.10 Hz")
}

func TestViewIdle(t *testing.T) {
	now := time.Unix(0, 0)
	m := newTestModel(&now, nil)

	view := m.View()
	assert.Contains(t, view, "Listening for voice...")
	assert.Contains(t, view, "Level: -160.0 dB")
}

func TestHeldNoteExpires(t *testing.T) {
	now := time.Unix(0, 0)
	m := newTestModel(&now, nil)

	m = update(m, UpdateAnalysisMsg{Pitch: 440, Note: "A4"})
	m = update(m, UpdateAnalysisMsg{Pitch: 0, Decibel: -160})

	now = now.Add(200 * time.Millisecond)
	assert.Contains(t, m.View(), "A4")

	now = now.Add(noteHoldDuration)
	assert.NotContains(t, m.View(), "A4")
	assert.Contains(t, m.View(), "Listening for voice...")
}

func TestMuteKey(t *testing.T) {
	now := time.Unix(0, 0)
	var muted time.Duration
	m := newTestModel(&now, func(d time.Duration) { muted = d })

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.Equal(t, 5*time.Second, muted)
	assert.Contains(t, m.View(), "MUTED")

	now = now.Add(5 * time.Second)
	assert.NotContains(t, m.View(), "MUTED")
}

func TestQuitKey(t *testing.T) {
	m := NewModel(time.Second, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if assert.NotNil(t, cmd) {
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestTickReschedules(t *testing.T) {
	m := NewModel(time.Second, nil)
	_, cmd := m.Update(TickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestRenderMeter(t *testing.T) {
	for _, v := range []float64{0, 1.0 / 12, 1, 2} {
		assert.Equal(t, meterWidth, lipgloss.Width(renderMeter(v)), "value %.3f", v)
	}
}

func TestGetNextNote(t *testing.T) {
	assert.Equal(t, "D", getNextNote("C"))
	assert.Equal(t, "C", getNextNote("B"))
}

func TestResultConversion(t *testing.T) {
	r := analyzer.Result{Pitch: 1, Decibel: 2, Note: "E3", NoteValue: 5.0 / 12}
	assert.Equal(t, r, analyzer.Result(UpdateAnalysisMsg(r)))
}

func TestViewCentersInWindow(t *testing.T) {
	now := time.Unix(0, 0)
	m := newTestModel(&now, nil)

	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	view := m.View()
	assert.Equal(t, 30, lipgloss.Height(view))
	assert.Equal(t, 80, lipgloss.Width(view))
}
