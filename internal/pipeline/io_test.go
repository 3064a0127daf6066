package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

func TestWriteAndReadSourceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sprite.png")

	buf := pixbuf.New(3, 2)
	buf.Set(0, 0, pixbuf.RGBA{R: 1, A: 1})
	buf.Set(2, 1, pixbuf.RGBA{G: 1, A: 0.5})

	require.NoError(t, WritePNG(path, buf))

	got, err := ReadSource(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.Width)
	require.Equal(t, 2, got.Height)

	// Quantization to 8 bits loses at most half a step per channel.
	require.InDelta(t, 1.0, got.At(0, 0).R, 1.0/255.0)
	require.InDelta(t, 0.5, got.At(2, 1).A, 1.0/255.0)
	require.Equal(t, 0.0, got.At(1, 0).A)
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open source image")
}

func TestWritePlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shadow.json")

	placement := Placement{
		PivotX:        0.5,
		PivotY:        0.25,
		CanvasWidth:   10,
		CanvasHeight:  20,
		SourceOriginX: 1,
		SourceOriginY: 2,
		ShadowOriginX: 3,
		ShadowOriginY: 4,
	}
	require.NoError(t, WritePlacement(path, placement))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Placement
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, placement, got)
}
