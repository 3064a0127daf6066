// Package geometry computes the canvas bounds and placement anchors for a
// source sprite and its offset shadow.
package geometry

import "math"

// Point is an integer pixel offset within the canvas.
type Point struct {
	X int
	Y int
}

// Canvas describes the minimal canvas that contains both the source sprite and
// its offset shadow, plus the anchors needed to place either one.
type Canvas struct {
	Width        int
	Height       int
	SourceOrigin Point
	ShadowOrigin Point
	// PivotX/PivotY are the normalized canvas position of the source center,
	// used as placement metadata by callers.
	PivotX float64
	PivotY float64
}

// Offset converts a polar shadow displacement into integer pixel deltas.
// Angle 0 points toward +x and increases toward +y; the buffer's y axis points
// down, so the same convention applies to both components.
func Offset(angleDegrees, distancePixels float64) (dx, dy int) {
	rad := angleDegrees * math.Pi / 180.0
	dx = int(math.Round(distancePixels * math.Cos(rad)))
	dy = int(math.Round(distancePixels * math.Sin(rad)))
	return dx, dy
}

// Compute returns the canvas geometry for a source of the given size.
// margin = padding + blurRadius is added on every side so the blur never
// clips against the canvas edge. Degenerate sources (w or h zero) still yield
// a valid canvas of 2*margin per axis; pivot normalization guards against
// zero-size canvases.
func Compute(srcWidth, srcHeight int, angleDegrees, distancePixels float64, padding, blurRadius int) Canvas {
	if padding < 0 {
		padding = 0
	}
	if blurRadius < 0 {
		blurRadius = 0
	}

	dx, dy := Offset(angleDegrees, distancePixels)

	minX := min(0, dx)
	minY := min(0, dy)
	maxX := max(srcWidth, srcWidth+dx)
	maxY := max(srcHeight, srcHeight+dy)

	margin := padding + blurRadius
	width := (maxX - minX) + 2*margin
	height := (maxY - minY) + 2*margin

	srcOrigin := Point{X: margin - minX, Y: margin - minY}

	pivotW := width
	if pivotW < 1 {
		pivotW = 1
	}
	pivotH := height
	if pivotH < 1 {
		pivotH = 1
	}

	return Canvas{
		Width:        width,
		Height:       height,
		SourceOrigin: srcOrigin,
		ShadowOrigin: Point{X: srcOrigin.X + dx, Y: srcOrigin.Y + dy},
		PivotX:       (float64(srcOrigin.X) + float64(srcWidth)/2.0) / float64(pivotW),
		PivotY:       (float64(srcOrigin.Y) + float64(srcHeight)/2.0) / float64(pivotH),
	}
}
