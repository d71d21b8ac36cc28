package render

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// CenterTrace plots the center temperature of frames[:upto+1] over time.
func CenterTrace(frames []Frame, upto int) string {
	if len(frames) == 0 {
		return ""
	}
	upto = min(max(upto, 0), len(frames)-1)
	data := make([]float64, upto+1)
	for i := range data {
		data[i] = frames[i].Center()
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("center temperature, t=0..%.3f s", frames[upto].Time)),
	)
}

// Profile plots the frame's 1D field or the center row of a 2D field on the
// fixed color range.
func Profile(f Frame, scale Scale) string {
	data := append([]float64(nil), f.Profile()...)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(scale.Min),
		asciigraph.UpperBound(scale.Max),
		asciigraph.Caption(fmt.Sprintf("%s profile at t=%.3f s", f.Dim, f.Time)),
	)
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.0f°", v)
}
