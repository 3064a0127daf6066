package shadow

import (
	"math"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

// minSpreadExponent is the exponent reached at spread=1. Raising alpha to a
// power below 1 pushes low (blurred-out) alphas upward, hardening the shadow.
const minSpreadExponent = 0.2

// SpreadExponent maps spread in [0,1] to the alpha exponent: 1.0 at spread=0
// down to minSpreadExponent at spread=1.
func SpreadExponent(spread float64) float64 {
	return 1.0 + (minSpreadExponent-1.0)*spread
}

// ApplySpread remaps the alpha channel of buf in place to simulate shadow
// hardness. RGB channels are untouched. spread <= 0 is the identity.
func ApplySpread(buf *pixbuf.Buffer, spread float64) {
	if spread <= 0 {
		return
	}
	if spread > 1 {
		spread = 1
	}

	exponent := SpreadExponent(spread)
	for i := range buf.Pix {
		a := buf.Pix[i].A
		if a > 0 {
			buf.Pix[i].A = math.Pow(a, exponent)
		}
	}
}
