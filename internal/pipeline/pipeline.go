// Package pipeline wires canvas geometry, shadow projection, blur, spread,
// and compositing into the bake and preview entry points.
package pipeline

import (
	"github.com/MeKo-Tech/dropshadow/internal/blur"
	"github.com/MeKo-Tech/dropshadow/internal/composite"
	"github.com/MeKo-Tech/dropshadow/internal/geometry"
	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
	"github.com/MeKo-Tech/dropshadow/internal/shadow"
)

// Options adjust pipeline behavior beyond the shadow parameters themselves.
type Options struct {
	// SpreadInBake also applies the spread remap to the baked shadow layer.
	// Historically spread only affected the preview; the flag lets callers
	// opt into consistent behavior across both paths.
	SpreadInBake bool
}

// Result carries a rendered buffer together with its placement metadata.
type Result struct {
	Image  *pixbuf.Buffer
	Canvas geometry.Canvas
}

// Bake produces the standalone shadow layer for export: alpha projection at
// the directional offset followed by the separable Gaussian blur. The spread
// remap is applied only when opts.SpreadInBake is set.
//
// The core is a pure function over the source buffer and parameters; all
// intermediate buffers are scoped to the call.
func Bake(src *pixbuf.Buffer, params shadow.Params, opts Options) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	canvas := geometry.Compute(
		src.Width, src.Height,
		params.AngleDegrees, params.DistancePixels,
		params.Padding, params.BlurRadius,
	)

	layer := shadow.Project(src, canvas, params.Color, params.Opacity)
	layer = blur.Gaussian(layer, params.BlurRadius)
	if opts.SpreadInBake {
		shadow.ApplySpread(layer, params.Spread)
	}

	return Result{Image: layer, Canvas: canvas}, nil
}

// Preview composites a display-ready image: the canvas is filled with an
// opaque background color, the spread-adjusted shadow layer goes over it, and
// the source sprite is drawn on top at its canvas origin.
func Preview(src *pixbuf.Buffer, params shadow.Params, background pixbuf.RGBA) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	canvas := geometry.Compute(
		src.Width, src.Height,
		params.AngleDegrees, params.DistancePixels,
		params.Padding, params.BlurRadius,
	)

	layer := shadow.Project(src, canvas, params.Color, params.Opacity)
	layer = blur.Gaussian(layer, params.BlurRadius)
	shadow.ApplySpread(layer, params.Spread)

	out := pixbuf.New(canvas.Width, canvas.Height)
	background.A = 1 // preview background is always opaque
	out.Fill(background)

	composite.Over(out, layer, 0, 0)
	composite.Over(out, src, canvas.SourceOrigin.X, canvas.SourceOrigin.Y)

	return Result{Image: out, Canvas: canvas}, nil
}
