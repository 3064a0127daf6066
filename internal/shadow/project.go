package shadow

import (
	"github.com/MeKo-Tech/dropshadow/internal/geometry"
	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

// blendEpsilon guards the proportional blend against division by a ~0 alpha.
const blendEpsilon = 1e-9

// Project rasterizes the shadow layer onto a transparent canvas-sized buffer.
// Every source pixel with alpha > 0 is written at source coordinate +
// shadowOrigin, tinted with the shadow color and scaled by opacity.
//
// Overlapping writes are resolved with a max-alpha proportional blend: the
// higher alpha wins and RGB is interpolated toward the shadow color by
// incoming/output alpha. This is idempotent for disjoint writes and
// approximates "most opaque wins" for overlaps; it is not true alpha
// compositing and is kept deliberately for parity with the reference visuals.
func Project(src *pixbuf.Buffer, canvas geometry.Canvas, color pixbuf.RGBA, opacity float64) *pixbuf.Buffer {
	dst := pixbuf.New(canvas.Width, canvas.Height)

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			a := src.At(x, y).A
			if a <= 0 {
				continue
			}

			dx := x + canvas.ShadowOrigin.X
			dy := y + canvas.ShadowOrigin.Y
			if !dst.In(dx, dy) {
				continue
			}

			finalAlpha := a * opacity * color.A
			dst.Set(dx, dy, resolveOverlap(dst.At(dx, dy), color, finalAlpha))
		}
	}

	return dst
}

// resolveOverlap merges an incoming shadow write with the existing cell value
// under the max-alpha proportional blend rule.
func resolveOverlap(existing, tint pixbuf.RGBA, incomingAlpha float64) pixbuf.RGBA {
	outAlpha := existing.A
	if incomingAlpha > outAlpha {
		outAlpha = incomingAlpha
	}

	factor := 0.0
	if outAlpha > blendEpsilon {
		factor = incomingAlpha / outAlpha
	}

	return pixbuf.RGBA{
		R: existing.R + (tint.R-existing.R)*factor,
		G: existing.G + (tint.G-existing.G)*factor,
		B: existing.B + (tint.B-existing.B)*factor,
		A: outAlpha,
	}
}
