package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

// Scale maps temperatures onto [0, 1].
type Scale struct {
	Min, Max float64
}

// DefaultScale covers the physical range of both scenario presets.
var DefaultScale = Scale{Min: heat.ColorMin, Max: heat.ColorMax}

// Norm clamps v into the scale and returns its position in [0, 1].
func (s Scale) Norm(v float64) float64 {
	if math.IsNaN(v) || s.Max <= s.Min {
		return 0
	}
	x := (v - s.Min) / (s.Max - s.Min)
	return math.Max(0, math.Min(1, x))
}

// Jet returns the classic blue-cyan-yellow-red ramp at x ∈ [0, 1].
func Jet(x float64) color.RGBA {
	channel := func(center float64) uint8 {
		v := 1.5 - math.Abs(4*x-center)
		return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
	}
	return color.RGBA{R: channel(3), G: channel(2), B: channel(1), A: 255}
}

// Color maps a temperature through the scale and the jet ramp.
func (s Scale) Color(v float64) color.RGBA {
	return Jet(s.Norm(v))
}

// Hex formats a color as #rrggbb for lipgloss.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// JetPalette is a 256-entry palette; index i holds Jet(i/255).
func JetPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = Jet(float64(i) / 255)
	}
	return p
}

// Index maps a temperature to its JetPalette entry.
func (s Scale) Index(v float64) uint8 {
	return uint8(math.Round(s.Norm(v) * 255))
}
