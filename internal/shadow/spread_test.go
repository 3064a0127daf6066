package shadow

import (
	"math"
	"testing"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

func TestSpreadExponentEndpoints(t *testing.T) {
	if got := SpreadExponent(0); got != 1.0 {
		t.Errorf("expected exponent 1.0 at spread 0, got %g", got)
	}
	if got := SpreadExponent(1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("expected exponent 0.2 at spread 1, got %g", got)
	}
	if got := SpreadExponent(0.5); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("expected exponent 0.6 at spread 0.5, got %g", got)
	}
}

func TestApplySpreadZeroIsIdentity(t *testing.T) {
	buf := pixbuf.New(2, 2)
	buf.Set(0, 0, pixbuf.RGBA{R: 0.3, A: 0.3})
	buf.Set(1, 1, pixbuf.RGBA{B: 0.9, A: 0.9})
	want := buf.Clone()

	ApplySpread(buf, 0)

	for i := range buf.Pix {
		if buf.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d changed under spread=0: %+v != %+v", i, buf.Pix[i], want.Pix[i])
		}
	}
}

func TestApplySpreadRaisesLowAlphas(t *testing.T) {
	buf := pixbuf.New(1, 1)
	buf.Set(0, 0, pixbuf.RGBA{R: 0.5, G: 0.25, B: 0.75, A: 0.25})

	ApplySpread(buf, 1)

	c := buf.At(0, 0)
	want := math.Pow(0.25, 0.2)
	if math.Abs(c.A-want) > 1e-12 {
		t.Fatalf("expected alpha %g, got %g", want, c.A)
	}
	if c.R != 0.5 || c.G != 0.25 || c.B != 0.75 {
		t.Fatalf("RGB must stay untouched, got %+v", c)
	}
}

func TestApplySpreadLeavesZeroAlpha(t *testing.T) {
	buf := pixbuf.New(1, 1)
	ApplySpread(buf, 1)

	if buf.At(0, 0).A != 0 {
		t.Fatal("fully transparent pixels must stay transparent")
	}
}

func TestSpreadMonotonicity(t *testing.T) {
	// For a fixed alpha in (0,1), higher spread must never lower the result.
	alphas := []float64{0.1, 0.25, 0.5, 0.9}
	spreads := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0}

	for _, a := range alphas {
		prev := -1.0
		for _, s := range spreads {
			buf := pixbuf.New(1, 1)
			buf.Set(0, 0, pixbuf.RGBA{A: a})
			ApplySpread(buf, s)

			got := buf.At(0, 0).A
			if got < prev {
				t.Fatalf("alpha %g: spread %g lowered result to %g (previous %g)", a, s, got, prev)
			}
			prev = got
		}
	}
}

func TestSpreadFullyOpaqueUnchanged(t *testing.T) {
	buf := pixbuf.New(1, 1)
	buf.Set(0, 0, pixbuf.RGBA{A: 1})

	ApplySpread(buf, 1)

	if buf.At(0, 0).A != 1 {
		t.Fatalf("alpha 1 must be a fixed point, got %g", buf.At(0, 0).A)
	}
}
