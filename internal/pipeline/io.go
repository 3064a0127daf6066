package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

// Placement is the sidecar metadata written next to a baked shadow so
// downstream tooling can position the exported bitmap.
type Placement struct {
	PivotX        float64 `json:"pivotX"`
	PivotY        float64 `json:"pivotY"`
	CanvasWidth   int     `json:"canvasWidth"`
	CanvasHeight  int     `json:"canvasHeight"`
	SourceOriginX int     `json:"sourceOriginX"`
	SourceOriginY int     `json:"sourceOriginY"`
	ShadowOriginX int     `json:"shadowOriginX"`
	ShadowOriginY int     `json:"shadowOriginY"`
}

// PlacementFor converts the canvas geometry of a result into sidecar metadata.
func PlacementFor(res Result) Placement {
	return Placement{
		PivotX:        res.Canvas.PivotX,
		PivotY:        res.Canvas.PivotY,
		CanvasWidth:   res.Canvas.Width,
		CanvasHeight:  res.Canvas.Height,
		SourceOriginX: res.Canvas.SourceOrigin.X,
		SourceOriginY: res.Canvas.SourceOrigin.Y,
		ShadowOriginX: res.Canvas.ShadowOrigin.X,
		ShadowOriginY: res.Canvas.ShadowOrigin.Y,
	}
}

// ReadSource decodes an image file into a pixel buffer.
func ReadSource(path string) (*pixbuf.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image: %w", err)
	}
	defer file.Close() // nolint:errcheck

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image %s: %w", path, err)
	}

	return pixbuf.FromImage(img), nil
}

// WritePNG encodes a buffer to a PNG file, creating parent directories as
// needed.
func WritePNG(path string, buf *pixbuf.Buffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close() // nolint:errcheck

	if err := png.Encode(file, buf.ToNRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG %s: %w", path, err)
	}

	return nil
}

// WritePlacement writes the placement sidecar as indented JSON.
func WritePlacement(path string, placement Placement) error {
	data, err := json.MarshalIndent(placement, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal placement metadata: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write placement metadata: %w", err)
	}

	return nil
}
