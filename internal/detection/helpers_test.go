package detection

import (
	"math"
	"testing"
)

// maskFromRows builds a mask where '#' is foreground (255) and anything else
// is background.
func maskFromRows(t *testing.T, rows ...string) *Buffer[int] {
	t.Helper()
	grid := make([][]int, len(rows))
	for y, row := range rows {
		grid[y] = make([]int, len(row))
		for x, ch := range row {
			if ch == '#' {
				grid[y][x] = 255
			}
		}
	}
	b, err := BufferFromRows(grid)
	if err != nil {
		t.Fatalf("maskFromRows: %v", err)
	}
	return b
}

// filledBuffer returns a width x height buffer where every sample is v.
func filledBuffer(width, height, v int) *Buffer[int] {
	b := NewBuffer[int](width, height)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

// solidChannels returns channels of a single flat colour.
func solidChannels(width, height, r, g, b int) Channels {
	return Channels{
		R: filledBuffer(width, height, r),
		G: filledBuffer(width, height, g),
		B: filledBuffer(width, height, b),
	}
}

// checkerChannels returns a grey image of the given background level with a
// black and white checkerboard inside rect [x0,x1) x [y0,y1).
func checkerChannels(width, height, background, x0, y0, x1, y1 int) Channels {
	grey := filledBuffer(width, height, background)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if (x+y)%2 == 0 {
				grey.Set(x, y, 255)
			} else {
				grey.Set(x, y, 0)
			}
		}
	}
	g := NewBuffer[int](width, height)
	b := NewBuffer[int](width, height)
	copy(g.Pix, grey.Pix)
	copy(b.Pix, grey.Pix)
	return Channels{R: grey, G: g, B: b}
}

func foreground(b *Buffer[int], x, y int) bool {
	return b.At(x, y) > 0
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
