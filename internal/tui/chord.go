// Package tui renders the recognized chord full-screen in the terminal.
// It is a pure display collaborator: updates flow in from the engine via
// Sink, nothing flows back into the pipeline.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nojokecox2102-crypto/quantum-chord-display/internal/transport"
)

var (
	chordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true).
			Padding(1, 4)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#25A065")).
			Padding(1, 6)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	confStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))
)

// UpdateMsg carries one surfaced recognition result into the model.
type UpdateMsg transport.Update

// ChordModel is the Bubble Tea model for the chord display.
type ChordModel struct {
	current transport.Update
	hasData bool
	width   int
	height  int
	keys    keyBindings
}

type keyBindings struct {
	quit key.Binding
}

// NewChordModel creates the display model in its waiting state.
func NewChordModel() ChordModel {
	return ChordModel{
		keys: keyBindings{
			quit: key.NewBinding(key.WithKeys("q", "ctrl+c")),
		},
	}
}

// Init implements tea.Model.
func (m ChordModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ChordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case UpdateMsg:
		m.current = transport.Update(msg)
		m.hasData = true

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m ChordModel) View() string {
	if m.width == 0 {
		return "Listening..."
	}

	label := "Listening..."
	detail := dimStyle.Render("play a chord")
	if m.hasData {
		label = m.current.Label
		detail = confStyle.Render(fmt.Sprintf("confidence %.2f", m.current.Confidence)) +
			"  " + dimStyle.Render(levelBar(m.current.Level))
	}

	card := frameStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			chordStyle.Render(bigText(label)),
			detail,
		),
	)

	help := dimStyle.Render("q: quit")
	body := lipgloss.JoinVertical(lipgloss.Center, card, "", help)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// levelBar renders the input RMS level as a small meter. Full scale sits at
// an RMS of 0.25, loud for mic input.
func levelBar(level float64) string {
	const width = 12
	filled := int(level / 0.25 * width)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// bigText spaces the label out so a short chord name reads large.
func bigText(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// Sink adapts a running Bubble Tea program into a transport.Transport so
// the engine can feed it emissions.
type Sink struct {
	program *tea.Program
}

// NewSink creates a Sink for the given program.
func NewSink(p *tea.Program) *Sink {
	return &Sink{program: p}
}

// Send forwards the update into the Bubble Tea event loop.
func (s *Sink) Send(u transport.Update) error {
	s.program.Send(UpdateMsg(u))
	return nil
}

// Close is a no-op; the program's lifecycle belongs to main.
func (s *Sink) Close() error {
	return nil
}

var _ transport.Transport = (*Sink)(nil)
