package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/0xlemi/vocalnote/internal/analyzer"
	"github.com/0xlemi/vocalnote/internal/pitch"
)

// Constants for UI behavior
const (
	// How long to keep showing the last note after the voice stops
	noteHoldDuration = 500 * time.Millisecond

	// Width of the note value meter in cells
	meterWidth = 24

	tickInterval = 100 * time.Millisecond
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	heldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))

	mutedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	meterFill  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	meterEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	// Note colors
	noteColors = map[string]string{
		"C": "#E8D6B0", // Beige
		"D": "#A020F0", // Purple
		"E": "#FFFF00", // Yellow
		"F": "#FFA500", // Orange
		"G": "#00FF00", // Green
		"A": "#FF0000", // Red
		"B": "#0000FF", // Blue
	}
)

// noteBlock is the boxed style for a note; sharps are drawn as two halves
// with the border split between them.
func noteBlock(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(color)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		PaddingTop(2).
		PaddingBottom(2)
}

// Get the next natural note in the scale (for sharp note colors)
func getNextNote(note string) string {
	switch note {
	case "C":
		return "D"
	case "D":
		return "E"
	case "E":
		return "F"
	case "F":
		return "G"
	case "G":
		return "A"
	case "A":
		return "B"
	default:
		return "C"
	}
}

// renderNote draws a note name such as "A4" or "C#3"
func renderNote(note string) string {
	class := pitch.PitchClassOf(note)
	octave := note[len(class):]

	if !strings.HasSuffix(class, "#") {
		return noteBlock(noteColors[class]).
			PaddingLeft(4).
			PaddingRight(4).
			Render(note)
	}

	base := class[:1]
	left := noteBlock(noteColors[base]).
		BorderLeft(true).
		BorderTop(true).
		BorderBottom(true).
		BorderRight(false).
		PaddingLeft(2).
		PaddingRight(1)
	right := noteBlock(noteColors[getNextNote(base)]).
		BorderLeft(false).
		BorderTop(true).
		BorderBottom(true).
		BorderRight(true).
		PaddingLeft(1).
		PaddingRight(2)

	return lipgloss.JoinHorizontal(lipgloss.Top, left.Render(base), right.Render("#"+octave))
}

// renderMeter draws the normalized note value as a bar
func renderMeter(value float64) string {
	filled := int(value*meterWidth + 0.5)
	filled = max(0, min(meterWidth, filled))

	return meterFill.Render(strings.Repeat("█", filled)) +
		meterEmpty.Render(strings.Repeat("░", meterWidth-filled))
}

// Model represents the UI state
type Model struct {
	current      analyzer.Result
	lastNote     string    // last non-empty note seen
	lastNoteTime time.Time // when lastNote was last seen
	mutedUntil   time.Time
	muteDuration time.Duration
	onMute       func(time.Duration)
	now          func() time.Time
	width        int
	height       int
}

// NewModel creates a new UI model. onMute is called when the user asks to
// silence the input; it may be nil.
func NewModel(muteDuration time.Duration, onMute func(time.Duration)) Model {
	return Model{
		current:      analyzer.Result{Decibel: pitch.SilenceFloor},
		muteDuration: muteDuration,
		onMute:       onMute,
		now:          time.Now,
	}
}

// Init initializes the UI model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TickMsg represents a timer tick
type TickMsg time.Time

// UpdateAnalysisMsg carries the latest analysis result
type UpdateAnalysisMsg analyzer.Result

// Update updates the UI model based on messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "m":
			if m.onMute != nil {
				m.onMute(m.muteDuration)
			}
			m.mutedUntil = m.now().Add(m.muteDuration)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		// Redraw so held notes and the mute banner expire
		return m, tick()

	case UpdateAnalysisMsg:
		m.current = analyzer.Result(msg)
		if m.current.Note != "" {
			m.lastNote = m.current.Note
			m.lastNoteTime = m.now()
		}
	}

	return m, nil
}

// displayNote returns the note to show and whether it is a held one
func (m Model) displayNote() (string, bool) {
	if m.current.Note != "" {
		return m.current.Note, false
	}
	if m.lastNote != "" && m.now().Sub(m.lastNoteTime) < noteHoldDuration {
		return m.lastNote, true
	}
	return "", false
}

// View renders the UI
func (m Model) View() string {
	s := titleStyle.Render("VocalNote - Pitch & Level")
	s += "\n"

	note, held := m.displayNote()
	if note != "" {
		block := renderNote(note)
		if held {
			block = heldStyle.Render(block)
		}
		s += block + "\n"
	} else {
		s += infoStyle.Render("Listening for voice...") + "\n"
	}

	info := fmt.Sprintf("Pitch: %.2f Hz | Level: %.1f dB", m.current.Pitch, m.current.Decibel)
	s += infoStyle.Render(info) + "\n"
	s += renderMeter(m.current.NoteValue) + " " + infoStyle.Render(fmt.Sprintf("%.3f", m.current.NoteValue))

	if m.now().Before(m.mutedUntil) {
		s += "\n" + mutedStyle.Render("MUTED")
	}

	s += "\n\n"
	s += infoStyle.Render("Press m to mute, q to quit")

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
	}
	return s
}
