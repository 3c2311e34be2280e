package detection

import "github.com/anthonynsimon/bild/parallel"

// Dilate applies one pass of flat 3x3 dilation with 8-connectivity.
//
// A pixel becomes foreground (1) if any cell of its 3x3 neighbourhood,
// itself included, is foreground (> 0) in the input. Cells outside the image
// count as background. The foreground set can only grow.
func Dilate(in *Buffer[int]) *Buffer[int] {
	out := NewBuffer[int](in.Width, in.Height)
	w, h := in.Width, in.Height

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, dilateAt(in, x, y, w, h))
			}
		}
	})
	return out
}

func dilateAt(in *Buffer[int], x, y, w, h int) int {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			continue
		}
		row := in.Row(ny)
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= w {
				continue
			}
			if row[nx] > 0 {
				return 1
			}
		}
	}
	return 0
}

// Erode applies one pass of flat 3x3 erosion with 8-connectivity.
//
// A pixel stays foreground (1) only if all nine cells of its 3x3
// neighbourhood are foreground. The outer ring of the image has no complete
// neighbourhood and is always background afterwards; there is no padding.
func Erode(in *Buffer[int]) *Buffer[int] {
	out := NewBuffer[int](in.Width, in.Height)
	w, h := in.Width, in.Height
	if w < 3 || h < 3 {
		return out
	}

	parallel.Line(h-2, func(start, end int) {
		for y := start + 1; y < end+1; y++ {
			for x := 1; x < w-1; x++ {
				out.Set(x, y, erodeAt(in, x, y))
			}
		}
	})
	return out
}

func erodeAt(in *Buffer[int], x, y int) int {
	for dy := -1; dy <= 1; dy++ {
		row := in.Row(y + dy)
		for dx := -1; dx <= 1; dx++ {
			if row[x+dx] <= 0 {
				return 0
			}
		}
	}
	return 1
}

// DilateN runs n dilation passes, each feeding the next.
func DilateN(in *Buffer[int], n int) *Buffer[int] {
	return repeat(in, n, Dilate)
}

// ErodeN runs n erosion passes, each feeding the next.
func ErodeN(in *Buffer[int], n int) *Buffer[int] {
	return repeat(in, n, Erode)
}

// repeat applies op n times. With n <= 0 it still returns a fresh copy so
// callers never share storage with their input.
func repeat(in *Buffer[int], n int, op func(*Buffer[int]) *Buffer[int]) *Buffer[int] {
	if n <= 0 {
		out := NewBuffer[int](in.Width, in.Height)
		copy(out.Pix, in.Pix)
		return out
	}
	out := in
	for i := 0; i < n; i++ {
		out = op(out)
	}
	return out
}
