package blur

import (
	"math"
	"testing"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

func TestKernelNormalized(t *testing.T) {
	for _, radius := range []int{0, 1, 2, 4, 8, 16} {
		weights := Kernel(radius)

		wantLen := 2*radius + 1
		if radius <= 0 {
			wantLen = 1
		}
		if len(weights) != wantLen {
			t.Fatalf("radius %d: expected %d weights, got %d", radius, wantLen, len(weights))
		}

		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("radius %d: weights sum to %g, want 1", radius, sum)
		}
	}
}

func TestKernelSymmetricAndPeaked(t *testing.T) {
	weights := Kernel(3)

	for k := 0; k <= 3; k++ {
		if math.Abs(weights[3-k]-weights[3+k]) > 1e-15 {
			t.Errorf("kernel not symmetric at offset %d", k)
		}
	}
	for k := 1; k <= 3; k++ {
		if weights[3+k] >= weights[3+k-1] {
			t.Errorf("kernel weight must decrease away from center, offset %d", k)
		}
	}
}

func TestGaussianRadiusZeroIdentity(t *testing.T) {
	src := pixbuf.New(3, 3)
	src.Set(1, 1, pixbuf.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8})

	out := Gaussian(src, 0)

	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("radius 0 must be the identity, pixel %d differs", i)
		}
	}

	// Identity still returns a copy, not the input buffer.
	out.Set(0, 0, pixbuf.RGBA{A: 1})
	if src.At(0, 0).A != 0 {
		t.Fatal("Gaussian must not alias the input buffer")
	}
}

func TestGaussianPreservesAlphaMassAwayFromEdges(t *testing.T) {
	// Content far from borders: edge clamping never kicks in, so the
	// normalized kernel preserves total alpha mass.
	src := pixbuf.New(32, 32)
	for y := 14; y <= 17; y++ {
		for x := 14; x <= 17; x++ {
			src.Set(x, y, pixbuf.RGBA{A: 1})
		}
	}

	out := Gaussian(src, 3)

	before := src.AlphaSum()
	after := out.AlphaSum()
	if math.Abs(before-after) > 1e-9 {
		t.Fatalf("alpha mass changed: %g -> %g", before, after)
	}
}

func TestGaussianUniformBufferIsFixedPoint(t *testing.T) {
	// Edge clamping replicates border pixels, so a constant buffer must come
	// out unchanged at any radius.
	src := pixbuf.New(8, 8)
	src.Fill(pixbuf.RGBA{R: 0.3, G: 0.6, B: 0.9, A: 0.5})

	out := Gaussian(src, 4)

	for i := range out.Pix {
		c := out.Pix[i]
		if math.Abs(c.R-0.3) > 1e-12 || math.Abs(c.G-0.6) > 1e-12 ||
			math.Abs(c.B-0.9) > 1e-12 || math.Abs(c.A-0.5) > 1e-12 {
			t.Fatalf("uniform buffer changed at pixel %d: %+v", i, c)
		}
	}
}

func TestGaussianMatchesDirect2DConvolution(t *testing.T) {
	// The two 1D passes must equal the full 2D convolution with the separable
	// product kernel (interior pixels only, away from clamping).
	src := pixbuf.New(16, 16)
	src.Set(8, 8, pixbuf.RGBA{A: 1})
	src.Set(9, 7, pixbuf.RGBA{A: 0.5})

	radius := 2
	out := Gaussian(src, radius)
	weights := Kernel(radius)

	for y := radius; y < 16-radius; y++ {
		for x := radius; x < 16-radius; x++ {
			want := 0.0
			for ky := -radius; ky <= radius; ky++ {
				for kx := -radius; kx <= radius; kx++ {
					want += src.At(x+kx, y+ky).A * weights[kx+radius] * weights[ky+radius]
				}
			}
			if math.Abs(out.At(x, y).A-want) > 1e-12 {
				t.Fatalf("pixel (%d,%d): separable %g != direct %g", x, y, out.At(x, y).A, want)
			}
		}
	}
}

func TestGaussianSymmetricAroundPointSource(t *testing.T) {
	src := pixbuf.New(11, 11)
	src.Set(5, 5, pixbuf.RGBA{A: 1})

	out := Gaussian(src, 3)

	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			a := out.At(5+dx, 5+dy).A
			b := out.At(5-dx, 5-dy).A
			if math.Abs(a-b) > 1e-12 {
				t.Fatalf("blur not symmetric at offset (%d,%d)", dx, dy)
			}
		}
	}

	if out.At(5, 5).A <= out.At(5, 6).A {
		t.Fatal("center must hold the peak")
	}
}

func TestGaussianDeterministic(t *testing.T) {
	src := pixbuf.New(9, 9)
	src.Set(4, 4, pixbuf.RGBA{R: 1, A: 1})
	src.Set(2, 6, pixbuf.RGBA{G: 1, A: 0.5})

	a := Gaussian(src, 2)
	b := Gaussian(src, 2)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("blur must be deterministic, pixel %d differs", i)
		}
	}
}
