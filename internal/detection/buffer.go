package detection

import "fmt"

// Sample is the element type a Buffer can hold. Greyscale and mask stages use
// integer samples in [0,255]; the variance stage produces real values.
type Sample interface {
	~int | ~float64
}

// Buffer is a dense, row-major grid of samples.
//
// Pix always holds exactly Width*Height elements, so every row has Width
// samples. Stages never write into their input: each one allocates a fresh
// Buffer for its output.
type Buffer[T Sample] struct {
	Width  int
	Height int
	Pix    []T
}

// NewBuffer allocates a zero-filled width x height buffer.
func NewBuffer[T Sample](width, height int) *Buffer[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("detection: negative buffer size %dx%d", width, height))
	}
	return &Buffer[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// BufferFromRows builds a buffer from a slice of rows. It returns an error if
// the rows are jagged.
func BufferFromRows[T Sample](rows [][]T) (*Buffer[T], error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	b := NewBuffer[T](width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d samples, want %d", y, len(row), width)
		}
		copy(b.Pix[y*width:(y+1)*width], row)
	}
	return b, nil
}

// At returns the sample at column x, row y.
func (b *Buffer[T]) At(x, y int) T {
	return b.Pix[y*b.Width+x]
}

// Set stores v at column x, row y.
func (b *Buffer[T]) Set(x, y int, v T) {
	b.Pix[y*b.Width+x] = v
}

// Row returns row y as a slice aliasing the buffer's storage.
func (b *Buffer[T]) Row(y int) []T {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Rows copies the buffer out as a slice of rows.
func (b *Buffer[T]) Rows() [][]T {
	rows := make([][]T, b.Height)
	for y := range rows {
		rows[y] = append([]T(nil), b.Row(y)...)
	}
	return rows
}

// InBounds reports whether (x, y) addresses a cell of the buffer.
func (b *Buffer[T]) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// SameSize reports whether two buffers share dimensions.
func SameSize[T, U Sample](a *Buffer[T], b *Buffer[U]) bool {
	return a.Width == b.Width && a.Height == b.Height
}

// MinMax returns the smallest and largest sample. An empty buffer yields
// zero for both.
func (b *Buffer[T]) MinMax() (min, max T) {
	if len(b.Pix) == 0 {
		return 0, 0
	}
	min, max = b.Pix[0], b.Pix[0]
	for _, v := range b.Pix[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// CountNonZero returns the number of samples greater than zero.
func (b *Buffer[T]) CountNonZero() int {
	n := 0
	for _, v := range b.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}
