// Package shadow projects a sprite's alpha channel into a tinted shadow layer
// and applies the spread (alpha remapping) transform.
package shadow

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

// Params define the shadow synthesis knobs. The set is immutable per
// invocation; the pipeline never mutates it.
type Params struct {
	Color          pixbuf.RGBA
	Opacity        float64 // 0..1
	AngleDegrees   float64 // 0..360, 0 = +x, increasing toward +y (y down)
	DistancePixels float64
	Spread         float64 // 0..1
	BlurRadius     int     // pixels, >= 0
	Padding        int     // pixels, >= 0
}

// DefaultParams returns sensible defaults for a soft dark drop shadow.
func DefaultParams() Params {
	return Params{
		Color:          pixbuf.RGBA{R: 0, G: 0, B: 0, A: 1},
		Opacity:        0.6,
		AngleDegrees:   135,
		DistancePixels: 6,
		Spread:         0,
		BlurRadius:     4,
		Padding:        2,
	}
}

// Validate rejects parameter values the pixel core treats as precondition
// violations. Range clamping of opacity/spread is the caller's job; negative
// sizes are never meaningful.
func (p Params) Validate() error {
	if p.BlurRadius < 0 {
		return fmt.Errorf("blur radius must be non-negative, got %d", p.BlurRadius)
	}
	if p.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", p.Padding)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("opacity must be within [0,1], got %g", p.Opacity)
	}
	if p.Spread < 0 || p.Spread > 1 {
		return fmt.Errorf("spread must be within [0,1], got %g", p.Spread)
	}
	return nil
}

// Hash returns a stable digest of the parameter set, used as part of the
// preview cache key.
func (p Params) Hash() string {
	h := sha256.New()
	for _, v := range []float64{
		p.Color.R, p.Color.G, p.Color.B, p.Color.A,
		p.Opacity, p.AngleDegrees, p.DistancePixels, p.Spread,
		float64(p.BlurRadius), float64(p.Padding),
	} {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
