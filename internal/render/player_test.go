package render

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/heatsim/internal/heat"
)

func testPanel(n int) Panel {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{Field: heat.Field{100, float64(20 + i), 100}, Time: float64(i) * 0.5, Dim: heat.Dim1, Nodes: 3}
	}
	return Panel{Title: "1D", Frames: frames}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Player, msg tea.Msg) (Player, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	p, ok := next.(Player)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return p, cmd
}

func TestPlayer_TickAdvancesAndStops(t *testing.T) {
	m := NewPlayer(testPanel(3))
	if m.Init() == nil {
		t.Fatal("Init should schedule a tick")
	}

	m, cmd := update(t, m, TickMsg{})
	if m.Frame() != 1 || cmd == nil {
		t.Errorf("frame = %d after one tick", m.Frame())
	}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	if m.Frame() != 2 || m.Playing() {
		t.Errorf("expected to stop on the last frame, got frame %d playing=%v", m.Frame(), m.Playing())
	}

	m, _ = update(t, m, key(" "))
	if !m.Playing() || m.Frame() != 0 {
		t.Errorf("space at the end should restart, got frame %d playing=%v", m.Frame(), m.Playing())
	}
}

func TestPlayer_Keys(t *testing.T) {
	m := NewPlayer(testPanel(30))

	m, _ = update(t, m, key("}"))
	if m.Frame() != 10 || m.Playing() {
		t.Errorf("} should jump and pause, got frame %d", m.Frame())
	}
	m, _ = update(t, m, key("["))
	if m.Frame() != 9 {
		t.Errorf("[ should step back, got frame %d", m.Frame())
	}
	m, _ = update(t, m, key("{"))
	m, _ = update(t, m, key("{"))
	if m.Frame() != 0 {
		t.Errorf("seek should clamp at 0, got frame %d", m.Frame())
	}

	m, _ = update(t, m, key("+"))
	if m.FPS() != 2*defaultFPS {
		t.Errorf("fps = %d", m.FPS())
	}
	for i := 0; i < 10; i++ {
		m, _ = update(t, m, key("-"))
	}
	if m.FPS() != 1 {
		t.Errorf("fps should floor at 1, got %d", m.FPS())
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlayer_View(t *testing.T) {
	m := NewPlayer(testPanel(4), Panel{Title: "2D", Frames: []Frame{frame2D(3, 50), frame2D(3, 60)}})
	view := m.View()
	if !strings.Contains(view, "1D Distribution at t: 0.000 [s].") {
		t.Errorf("view missing 1D title:\n%s", view)
	}
	if !strings.Contains(view, "frame 1/2") {
		t.Errorf("playback length should follow the shortest panel:\n%s", view)
	}

	empty := NewPlayer()
	if !strings.Contains(empty.View(), "no frames") {
		t.Error("empty player should say so")
	}
}
