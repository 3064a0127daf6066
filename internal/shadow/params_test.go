package shadow

import (
	"testing"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params must validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative blur radius", func(p *Params) { p.BlurRadius = -1 }},
		{"negative padding", func(p *Params) { p.Padding = -2 }},
		{"opacity above one", func(p *Params) { p.Opacity = 1.01 }},
		{"negative opacity", func(p *Params) { p.Opacity = -0.1 }},
		{"spread above one", func(p *Params) { p.Spread = 2 }},
		{"negative spread", func(p *Params) { p.Spread = -0.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestHashStableAndDistinct(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()

	if a.Hash() != b.Hash() {
		t.Fatal("equal params must hash equal")
	}

	b.DistancePixels += 0.001
	if a.Hash() == b.Hash() {
		t.Fatal("differing params must hash differently")
	}

	c := DefaultParams()
	c.Color = pixbuf.RGBA{R: 1, A: 1}
	if a.Hash() == c.Hash() {
		t.Fatal("color change must affect the hash")
	}
}
