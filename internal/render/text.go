package render

import (
	"fmt"
	"io"
)

// Text writes each frame as a titled heat map to w.
type Text struct {
	W        io.Writer
	Scale    Scale
	MaxCells int
	Title    string
}

func NewText(w io.Writer, title string) *Text {
	return &Text{W: w, Scale: DefaultScale, MaxCells: DefaultMaxCells, Title: title}
}

func (t *Text) Render(f Frame) error {
	_, err := fmt.Fprintf(t.W, "%s at t: %.3f [s]\n%s\n", t.Title, f.Time, Heatmap(f, t.Scale, t.MaxCells))
	return err
}
