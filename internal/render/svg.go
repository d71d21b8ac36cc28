package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	svgWidth  = 640
	svgHeight = 320
)

// Point is one vertex of an SVG polyline.
type Point struct{ X, Y float64 }

// LineSVG draws points as a single path. The y axis spans [lo, hi] when
// lo < hi, otherwise the padded data range.
func LineSVG(points []Point, lo, hi float64, width, height int, stroke string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	if lo < hi {
		minY, maxY = lo, hi
	} else {
		pad := (maxY - minY) * 0.1
		if pad == 0 {
			pad = 1
		}
		minY, maxY = minY-pad, maxY+pad
	}
	rangeY := maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ProfileSVG plots a frame's profile against node position on the fixed
// color range, stroked with the color of the profile's mean.
func ProfileSVG(f Frame, scale Scale) string {
	profile := f.Profile()
	points := make([]Point, len(profile))
	sum := 0.0
	for i, v := range profile {
		points[i] = Point{X: float64(i), Y: v}
		sum += v
	}
	stroke := "#00ff00"
	if len(profile) > 0 {
		stroke = Hex(scale.Color(sum / float64(len(profile))))
	}
	return LineSVG(points, scale.Min, scale.Max, svgWidth, svgHeight, stroke)
}

// TraceSVG plots the center temperature against time.
func TraceSVG(frames []Frame) string {
	points := make([]Point, len(frames))
	for i, f := range frames {
		points[i] = Point{X: f.Time, Y: f.Center()}
	}
	return LineSVG(points, 0, 0, svgWidth, svgHeight, "#00ff00")
}
