// Package composite implements unpremultiplied Porter-Duff "over" compositing
// for the preview and bake output layers.
package composite

import "github.com/MeKo-Tech/dropshadow/internal/pixbuf"

// alphaEpsilon guards the unpremultiply division when the combined alpha of
// two pixels is effectively zero.
const alphaEpsilon = 1e-9

// OverPixel composites src over dst, both unpremultiplied.
func OverPixel(src, dst pixbuf.RGBA) pixbuf.RGBA {
	outA := src.A + dst.A*(1.0-src.A)
	if outA <= alphaEpsilon {
		// Both layers are effectively transparent; keep the source color so
		// the RGB stays meaningful if alpha is raised later.
		return pixbuf.RGBA{R: src.R, G: src.G, B: src.B, A: outA}
	}

	blend := func(s, d float64) float64 {
		return (s*src.A + d*dst.A*(1.0-src.A)) / outA
	}

	return pixbuf.RGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: outA,
	}
}

// Over composites src over dst in place, with src placed at (offsetX, offsetY)
// in dst coordinates. Pixels falling outside dst are skipped. "Over" is
// order-dependent; callers composite bottom-to-top.
func Over(dst, src *pixbuf.Buffer, offsetX, offsetY int) {
	for y := 0; y < src.Height; y++ {
		dy := y + offsetY
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for x := 0; x < src.Width; x++ {
			dx := x + offsetX
			if dx < 0 || dx >= dst.Width {
				continue
			}

			s := src.At(x, y)
			if s.A <= 0 {
				continue
			}

			dst.Set(dx, dy, OverPixel(s, dst.At(dx, dy)))
		}
	}
}
