package sprite

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testSpriteParams() Params {
	return Params{
		Size: 64,
		Fill: color.NRGBA{R: 74, G: 144, B: 217, A: 255},
		Seed: 1337,
	}
}

func TestGenerateDisc(t *testing.T) {
	buf, err := Generate(KindDisc, testSpriteParams())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if buf.Width != 64 || buf.Height != 64 {
		t.Fatalf("expected 64x64 sprite, got %dx%d", buf.Width, buf.Height)
	}

	if buf.At(32, 32).A != 1 {
		t.Errorf("expected opaque center, got alpha %g", buf.At(32, 32).A)
	}
	if buf.At(0, 0).A != 0 || buf.At(63, 63).A != 0 {
		t.Error("expected transparent corners")
	}
}

func TestGenerateRoundedRect(t *testing.T) {
	buf, err := Generate(KindRoundedRect, testSpriteParams())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if buf.At(32, 32).A != 1 {
		t.Errorf("expected opaque center, got alpha %g", buf.At(32, 32).A)
	}
	// Inset corners stay transparent, straight edge midpoints are filled.
	if buf.At(0, 0).A != 0 {
		t.Error("expected transparent corner outside inset")
	}
	if buf.At(32, 8).A == 0 {
		t.Error("expected filled top edge inside inset")
	}
}

func TestGenerateBlobDeterministic(t *testing.T) {
	a, err := Generate(KindBlob, testSpriteParams())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	b, err := Generate(KindBlob, testSpriteParams())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("blob generation must be deterministic, pixel %d differs", i)
		}
	}

	// Blob alpha is disc alpha scaled into (0,1]; it must stay below or at
	// the disc but keep a visible body.
	disc, err := Generate(KindDisc, testSpriteParams())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if a.At(32, 32).A <= 0 || a.At(32, 32).A > disc.At(32, 32).A {
		t.Errorf("expected modulated center alpha in (0,1], got %g", a.At(32, 32).A)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(KindDisc, Params{Size: 0}); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := Generate(Kind("hexagon"), testSpriteParams()); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestWriteSampleSprites(t *testing.T) {
	dir := t.TempDir()

	result, err := WriteSampleSprites(dir, testSpriteParams(), false)
	if err != nil {
		t.Fatalf("WriteSampleSprites returned error: %v", err)
	}
	if len(result.Written) != len(Kinds) {
		t.Fatalf("expected %d sprites written, got %d", len(Kinds), len(result.Written))
	}

	for _, kind := range Kinds {
		path := filepath.Join(dir, string(kind)+".png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected sprite file %s: %v", path, err)
		}
	}

	// Second run without overwrite skips everything.
	result, err = WriteSampleSprites(dir, testSpriteParams(), false)
	if err != nil {
		t.Fatalf("WriteSampleSprites returned error: %v", err)
	}
	if len(result.Skipped) != len(Kinds) || len(result.Written) != 0 {
		t.Fatalf("expected all sprites skipped, got written=%d skipped=%d",
			len(result.Written), len(result.Skipped))
	}
}
