package render

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultFPS = 20
	maxFPS     = 120
)

var (
	panelStyle  = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Panel is one run shown by the player.
type Panel struct {
	Title  string
	Frames []Frame
}

// Player plays panels frame by frame in lockstep.
type Player struct {
	panels   []Panel
	scale    Scale
	maxCells int
	frame    int
	length   int
	playing  bool
	fps      int
	showHelp bool
}

// NewPlayer builds a player over panels; playback length is the shortest panel.
func NewPlayer(panels ...Panel) Player {
	length := 0
	for i, p := range panels {
		if i == 0 || len(p.Frames) < length {
			length = len(p.Frames)
		}
	}
	return Player{
		panels:   panels,
		scale:    DefaultScale,
		maxCells: DefaultMaxCells / max(len(panels), 1),
		length:   length,
		playing:  true,
		fps:      defaultFPS,
	}
}

func (m Player) Frame() int    { return m.frame }
func (m Player) Playing() bool { return m.playing }
func (m Player) FPS() int      { return m.fps }

func (m Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Player) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys and advances playback on ticks.
func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing && m.frame >= m.length-1 {
				m.frame = 0
			}
		case "[", "left", "h":
			m.seek(-1)
		case "]", "right", "l":
			m.seek(1)
		case "{":
			m.seek(-10)
		case "}":
			m.seek(10)
		case "home":
			m.frame = 0
		case "end":
			m.seek(m.length)
		case "r":
			m.frame = 0
			m.playing = true
		case "+", "=":
			m.fps = min(m.fps*2, maxFPS)
		case "-", "_":
			m.fps = max(m.fps/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	case TickMsg:
		if m.playing {
			if m.frame < m.length-1 {
				m.frame++
			} else {
				m.playing = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Player) seek(delta int) {
	m.playing = false
	m.frame = min(max(m.frame+delta, 0), max(m.length-1, 0))
}

// View renders every panel at the current frame.
func (m Player) View() string {
	if m.length == 0 {
		return "no frames to play\n"
	}

	views := make([]string, 0, len(m.panels))
	for _, p := range m.panels {
		f := p.Frames[m.frame]
		title := headerStyle.Render(fmt.Sprintf("%s Distribution at t: %.3f [s].", p.Title, f.Time))
		stats := labelStyle.Render(fmt.Sprintf("center %.2f°  frame %d/%d", f.Center(), m.frame+1, m.length))
		views = append(views, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			Heatmap(f, m.scale, m.maxCells),
			"",
			stats,
		)))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(Legend(m.scale, 40)))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(CenterTrace(m.panels[0].Frames, m.frame)))
	b.WriteString("\n")

	state := "playing"
	if !m.playing {
		state = "paused"
	}
	help := fmt.Sprintf("%s @ %d fps • space pause • [ ] step • + - speed • q quit • ? help", state, m.fps)
	if m.showHelp {
		help += "\n{ } jump 10 frames • home/end first/last • r restart"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

// Play runs the player full screen until the user quits.
func Play(panels ...Panel) error {
	p := tea.NewProgram(NewPlayer(panels...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
