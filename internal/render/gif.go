package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
)

// strip1D is the pixel height of a 1D frame in cells.
const strip1D = 4

// GIF accumulates frames into an animated jet color map.
type GIF struct {
	Scale    Scale
	CellSize int
	Delay    int // hundredths of a second between frames

	palette color.Palette
	frames  []*image.Paletted
	delays  []int
}

func NewGIF(cellSize, delay int) *GIF {
	if cellSize < 1 {
		cellSize = 1
	}
	return &GIF{Scale: DefaultScale, CellSize: cellSize, Delay: delay}
}

func (g *GIF) Render(f Frame) error {
	if len(f.Field) == 0 {
		return fmt.Errorf("render: empty frame at t=%.3f", f.Time)
	}
	g.frames = append(g.frames, g.Image(f))
	g.delays = append(g.delays, g.Delay)
	return nil
}

func (g *GIF) Len() int { return len(g.frames) }

// Image draws one frame. 1D frames become a horizontal strip.
func (g *GIF) Image(f Frame) *image.Paletted {
	rows := f.Rows()
	cellRows := rows
	if rows == 1 {
		cellRows = strip1D
	}
	cs := max(g.CellSize, 1)
	if g.palette == nil {
		g.palette = JetPalette()
	}
	img := image.NewPaletted(image.Rect(0, 0, f.Nodes*cs, cellRows*cs), g.palette)

	for cy := 0; cy < cellRows; cy++ {
		row := cy
		if rows == 1 {
			row = 0
		}
		for col := 0; col < f.Nodes; col++ {
			idx := g.Scale.Index(f.At(row, col))
			for py := cy * cs; py < (cy+1)*cs; py++ {
				for px := col * cs; px < (col+1)*cs; px++ {
					img.SetColorIndex(px, py, idx)
				}
			}
		}
	}
	return img
}

// Encode writes the accumulated animation.
func (g *GIF) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("render: no frames to encode")
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image: g.frames,
		Delay: g.delays,
	})
}

// Save encodes the animation to filename, creating its directory.
func (g *GIF) Save(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := g.Encode(f); err != nil {
		return err
	}
	return f.Close()
}
