package sprite

import (
	"fmt"
	"image/png"
	"os"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
)

func writePNG(path string, buf *pixbuf.Buffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sprite file: %w", err)
	}
	defer file.Close() // nolint:errcheck

	if err := png.Encode(file, buf.ToNRGBA()); err != nil {
		return fmt.Errorf("failed to encode sprite %s: %w", path, err)
	}

	return nil
}
