// Package sprite generates deterministic sample sprites for exercising the
// shadow pipeline without real art assets.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/aquilax/go-perlin"
	"golang.org/x/image/vector"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

// Kind selects a sample sprite shape.
type Kind string

const (
	KindDisc        Kind = "disc"
	KindRoundedRect Kind = "rounded-rect"
	KindBlob        Kind = "blob"
)

// Kinds lists the supported sample sprites in generation order.
var Kinds = []Kind{KindDisc, KindRoundedRect, KindBlob}

// Params configure sample sprite generation.
type Params struct {
	Size int // square sprite edge in pixels
	Fill color.NRGBA
	Seed int64 // used by the perlin-modulated blob
}

// Generate produces the requested sprite as a pixel buffer.
func Generate(kind Kind, params Params) (*pixbuf.Buffer, error) {
	if params.Size <= 0 {
		return nil, fmt.Errorf("sprite size must be positive")
	}

	switch kind {
	case KindDisc:
		return pixbuf.FromImage(disc(params)), nil
	case KindRoundedRect:
		return pixbuf.FromImage(roundedRect(params)), nil
	case KindBlob:
		return blob(params), nil
	default:
		return nil, fmt.Errorf("unknown sprite kind %q", kind)
	}
}

// disc rasterizes an antialiased filled circle covering ~80% of the sprite.
func disc(params Params) *image.NRGBA {
	size := params.Size
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))

	c := float32(size) / 2.0
	r := c * 0.8

	ras := vector.NewRasterizer(size, size)
	// Approximate the circle with four cubic arcs.
	const q = 4 * (math.Sqrt2 - 1) / 3
	k := r * q
	ras.MoveTo(c+r, c)
	ras.CubeTo(c+r, c+k, c+k, c+r, c, c+r)
	ras.CubeTo(c-k, c+r, c-r, c+k, c-r, c)
	ras.CubeTo(c-r, c-k, c-k, c-r, c, c-r)
	ras.CubeTo(c+k, c-r, c+r, c-k, c+r, c)
	ras.ClosePath()

	src := image.NewUniform(params.Fill)
	ras.Draw(dst, dst.Bounds(), src, image.Point{})

	return dst
}

// roundedRect rasterizes a rounded rectangle with corner radius size/8.
func roundedRect(params Params) *image.NRGBA {
	size := params.Size
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))

	inset := float32(size) * 0.1
	corner := float32(size) / 8.0

	const q = 4 * (math.Sqrt2 - 1) / 3
	iq := float32(1 - q)

	w := inset
	n := inset
	e := float32(size) - inset
	s := float32(size) - inset

	ras := vector.NewRasterizer(size, size)
	ras.MoveTo(w+corner, n)
	ras.LineTo(e-corner, n)
	ras.CubeTo(e-corner*iq, n, e, n+corner*iq, e, n+corner)
	ras.LineTo(e, s-corner)
	ras.CubeTo(e, s-corner*iq, e-corner*iq, s, e-corner, s)
	ras.LineTo(w+corner, s)
	ras.CubeTo(w+corner*iq, s, w, s-corner*iq, w, s-corner)
	ras.LineTo(w, n+corner)
	ras.CubeTo(w, n+corner*iq, w+corner*iq, n, w+corner, n)
	ras.ClosePath()

	src := image.NewUniform(params.Fill)
	ras.Draw(dst, dst.Bounds(), src, image.Point{})

	return dst
}

// blob builds a disc whose alpha is modulated by Perlin noise, giving an
// organic semi-transparent edge that exercises the projector's partial-alpha
// path.
func blob(params Params) *pixbuf.Buffer {
	size := params.Size
	buf := pixbuf.FromImage(disc(params))

	p := perlin.NewPerlin(2.0, 2.0, 3, params.Seed)
	scale := float64(size) / 4.0

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := buf.At(x, y)
			if c.A <= 0 {
				continue
			}

			// Noise2D returns roughly [-1,1]; map to [0.4,1] so the body
			// stays visible while the edge frays.
			noise := p.Noise2D(float64(x)/scale, float64(y)/scale)
			factor := 0.7 + 0.3*noise
			if factor < 0.4 {
				factor = 0.4
			}
			if factor > 1 {
				factor = 1
			}

			c.A *= factor
			buf.Set(x, y, c)
		}
	}

	return buf
}

// WriteResult reports which sprites were written or skipped.
type WriteResult struct {
	Written []string
	Skipped []string
}

// WriteSampleSprites generates the full sample set into dir as PNG files.
// Existing files are skipped unless overwrite is set.
func WriteSampleSprites(dir string, params Params, overwrite bool) (WriteResult, error) {
	result := WriteResult{}
	if params.Size <= 0 {
		return result, fmt.Errorf("sprite size must be positive")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create sprite dir: %w", err)
	}

	for _, kind := range Kinds {
		path := filepath.Join(dir, string(kind)+".png")
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				result.Skipped = append(result.Skipped, path)
				continue
			}
		}

		buf, err := Generate(kind, params)
		if err != nil {
			return result, err
		}
		if err := writePNG(path, buf); err != nil {
			return result, err
		}

		result.Written = append(result.Written, path)
	}

	return result, nil
}
