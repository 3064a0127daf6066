package pixbuf

import (
	"image"
	"image/color"
	"math"
)

// FromImage copies an image into a normalized float buffer.
// Colors are converted through the NRGBA model, so channels stay unpremultiplied.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.Set(x, y, RGBA{
				R: float64(c.R) / 255.0,
				G: float64(c.G) / 255.0,
				B: float64(c.B) / 255.0,
				A: float64(c.A) / 255.0,
			})
		}
	}

	return buf
}

// ToNRGBA quantizes the buffer to an 8-bit NRGBA image with rounding.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: quantize(c.R),
				G: quantize(c.G),
				B: quantize(c.B),
				A: quantize(c.A),
			})
		}
	}

	return img
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255.0))
}
