// Package pixbuf provides the flat RGBA pixel buffer the shadow pipeline operates on.
package pixbuf

// RGBA is an unpremultiplied color with normalized channels in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// Buffer is a rectangular grid of RGBA pixels stored row-major, indexed y*Width+x.
// Invariant: len(Pix) == Width*Height.
type Buffer struct {
	Pix    []RGBA
	Width  int
	Height int
}

// New allocates a fully transparent buffer of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Pix:    make([]RGBA, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the pixel at (x, y). Callers must stay in bounds.
func (b *Buffer) At(x, y int) RGBA {
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y). Callers must stay in bounds.
func (b *Buffer) Set(x, y int, c RGBA) {
	b.Pix[y*b.Width+x] = c
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c RGBA) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// AlphaSum returns the total alpha mass of the buffer.
func (b *Buffer) AlphaSum() float64 {
	sum := 0.0
	for i := range b.Pix {
		sum += b.Pix[i].A
	}
	return sum
}
