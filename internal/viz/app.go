package viz

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/epicycle/internal/config"
	"github.com/san-kum/epicycle/internal/logging"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/scene"
)

const (
	width             = 80
	height            = 24
	longitudeCapacity = 240
)

// Controls is the subset of the configuration the terminal host needs.
type Controls struct {
	FPS     int
	Speed   config.SpeedRange
	GIFPath string
}

type TickMsg time.Time

// Model drives a scene controller from a Bubble Tea program.
type Model struct {
	ctrl     *scene.Controller
	controls Controls
	log      logging.Logger

	canvas  *Canvas
	surface *Surface

	theme  Theme
	styles styles

	longitudes []float64
	retrograde bool

	recording bool
	frames    []*image.Paletted
	showHelp  bool
	status    string
}

func NewModel(ctrl *scene.Controller, controls Controls, log logging.Logger) Model {
	if log == nil {
		log = logging.Noop()
	}
	if controls.FPS <= 0 {
		controls.FPS = 30
	}
	if controls.Speed == (config.SpeedRange{}) {
		controls.Speed = config.DefaultConfig().SpeedRange
	}
	if controls.GIFPath == "" {
		controls.GIFPath = "epicycle.gif"
	}
	canvas := NewCanvas(width, height)
	w, h := ctrl.Size()
	return Model{
		ctrl:       ctrl,
		controls:   controls,
		log:        log,
		canvas:     canvas,
		surface:    NewSurface(canvas, w, h),
		theme:      ThemeNight,
		styles:     newStyles(ThemeNight),
		longitudes: make([]float64, 0, longitudeCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.controls.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the scene on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.ctrl.TogglePlay()
		case "r":
			m.ctrl.Reset()
			m.longitudes = m.longitudes[:0]
		case "1", "2", "3":
			mode := orbit.Modes[msg.String()[0]-'1']
			if mode != m.ctrl.State().Mode {
				m.longitudes = m.longitudes[:0]
			}
			if err := m.ctrl.SetMode(mode); err != nil {
				m.status = err.Error()
			}
		case "v":
			m.setView(m.ctrl.State().View.Next())
		case "+", "=":
			m.nudgeSpeed(1)
		case "-", "_":
			m.nudgeSpeed(-1)
		case "g":
			m.toggleRecording()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		snap := m.ctrl.Frame(m.surface)
		if m.ctrl.State().Playing {
			m.trackLongitude(snap)
		}
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) setView(v orbit.View) {
	if err := m.ctrl.SetView(v); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) nudgeSpeed(dir int) {
	v := m.controls.Speed.Nudge(m.ctrl.State().Speed, dir)
	if err := m.ctrl.SetSpeed(v); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) trackLongitude(snap orbit.Snapshot) {
	lon := snap.ApparentLongitude()
	if n := len(m.longitudes); n > 0 {
		prev := m.longitudes[n-1]
		lon = orbit.Unwrap(prev, lon)
		m.retrograde = lon < prev
	}
	m.longitudes = append(m.longitudes, lon)
	if len(m.longitudes) > longitudeCapacity {
		m.longitudes = m.longitudes[1:]
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = err.Error()
		m.log.Error(context.Background(), "save gif", logging.Err(err))
	} else {
		m.status = "saved " + m.controls.GIFPath
		m.log.Info(context.Background(), "gif saved",
			logging.String("path", m.controls.GIFPath), logging.Int("frames", len(m.frames)))
	}
	m.frames = nil
}

// View renders the canvas beside the sidebar.
func (m Model) View() string {
	st := m.ctrl.State()
	sty := m.styles

	var tabs []string
	for _, mode := range orbit.Modes {
		if mode == st.Mode {
			tabs = append(tabs, sty.activeTab.Render(mode.String()))
		} else {
			tabs = append(tabs, sty.tab.Render(mode.String()))
		}
	}
	canvasView := canvasStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" + m.canvas.Render())

	var s strings.Builder
	s.WriteString(sty.header.Render(strings.ToUpper(st.Mode.String())) + "\n")
	switch {
	case m.recording:
		s.WriteString(sty.recording.Render(fmt.Sprintf("REC %d", len(m.frames))) + "\n\n")
	case st.Playing:
		s.WriteString(sty.running.Render("PLAYING") + "\n\n")
	default:
		s.WriteString(sty.paused.Render("PAUSED") + "\n\n")
	}

	view := st.View.String()
	if st.Mode == orbit.ModePtolemaic {
		view = "epicycle"
	}
	s.WriteString(sty.label.Render("View") + sty.value.Render(view) + "\n")
	s.WriteString(sty.label.Render("Time") + sty.value.Render(fmt.Sprintf("%.2f", st.Time)) + "\n")
	s.WriteString(sty.label.Render("Speed") + sty.value.Render(fmt.Sprintf("%.1fx", st.Speed)) + "\n")

	if n := len(m.longitudes); n > 1 {
		motion := "prograde"
		if m.retrograde {
			motion = "retrograde"
		}
		s.WriteString(sty.label.Render("Motion") + sty.value.Render(motion) + "\n")
		chart := asciigraph.Plot(m.longitudes, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("apparent longitude (deg)"))
		s.WriteString(sty.graph.Render(chart) + "\n")
	}
	if m.status != "" {
		s.WriteString(sty.value.Render(m.status) + "\n")
	}
	s.WriteString(Separator(36, sty.help) + "\n")
	s.WriteString(sty.help.Render("SP:Pause R:Reset Q:Quit\n1/2/3:Mode V:View +/-:Speed\nG:Record T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sty.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  R        - Reset time and trails    ║
║  1/2/3    - Venus/Mars/Ptolemaic     ║
║  V        - Top-down/From Earth      ║
║  + / -    - Speed up/slow down       ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal host and blocks until the user quits.
func Run(ctrl *scene.Controller, controls Controls, log logging.Logger) error {
	_, err := tea.NewProgram(NewModel(ctrl, controls, log), tea.WithAltScreen()).Run()
	return err
}
