// Package tui renders the simulation in a terminal.
package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"solar-sim/internal/camera"
	"solar-sim/pkg/simulation"
)

// Options configures the terminal view.
type Options struct {
	FPS           int
	StepsPerFrame int
}

type tickMsg time.Time

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Model is the bubbletea model for one simulator.
type Model struct {
	sim    *simulation.Simulator
	cam    *camera.Camera
	opts   Options
	styles map[color.RGBA]lipgloss.Style
}

// New returns a model with an 80x24 view until the terminal reports its size.
func New(sim *simulation.Simulator, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 1
	}
	cam := camera.New(80, 22)
	cam.Zoom = 2
	// terminal cells are roughly twice as tall as they are wide
	cam.Aspect = 2
	return Model{sim: sim, cam: cam, opts: opts, styles: map[color.RGBA]lipgloss.Style{}}
}

// Run starts the program and blocks until the user quits.
func Run(sim *simulation.Simulator, opts Options) error {
	p := tea.NewProgram(New(sim, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys, resizes and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		for i := 0; i < m.opts.StepsPerFrame; i++ {
			if !m.sim.Step() {
				break
			}
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.cam.Width = msg.Width
		m.cam.Height = max(msg.Height-2, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.sim.TogglePause()
		case "n":
			m.sim.StepIfPaused()
		case "+", "=":
			m.cam.ZoomBy(3)
		case "-":
			m.cam.ZoomBy(-3)
		case "up", "k":
			m.cam.Pan(0, -4)
		case "down", "j":
			m.cam.Pan(0, 4)
		case "left", "h":
			m.cam.Pan(-8, 0)
		case "right", "l":
			m.cam.Pan(8, 0)
		case "tab":
			m.cam.Cycle(m.sim.Snapshot())
		case "0":
			m.cam.ClearFocus()
		}
	}
	return m, nil
}

// View draws one frame: the plane, then a status line.
func (m Model) View() string {
	snap := m.sim.Snapshot()
	w, h := m.cam.Width, m.cam.Height
	if w <= 0 || h <= 0 {
		return ""
	}

	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	center := m.cam.Center(snap)
	for _, b := range snap.Bodies {
		fx, fy := m.cam.ToScreen(center, b.Pos)
		x, y := int(fx), int(fy)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		grid[y][x] = m.style(b.Color).Render(glyph(b.Name))
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.Join(row, ""))
		sb.WriteByte('\n')
	}

	focus := "none"
	if b, ok := snap.Find(m.cam.Focus); ok {
		focus = b.Name
	}
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%s  tick %d  t=%.3f  focus %s  zoom %.1f", snap.Name, snap.Tick, snap.Time, focus, m.cam.Zoom)))
	if snap.Paused {
		sb.WriteString("  " + pausedStyle.Render("PAUSED"))
	}
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render("p pause  n step  +/- zoom  arrows pan  tab focus  0 origin  q quit"))
	return sb.String()
}

func (m Model) style(c color.RGBA) lipgloss.Style {
	if st, ok := m.styles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	m.styles[c] = st
	return st
}

func glyph(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "*"
	}
	return string(unicode.ToUpper(r))
}
