package detection

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"gonum.org/v1/gonum/stat"
)

// Luma weights from ITU-R BT.601.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Greyscale combines three channel buffers into one luma buffer:
//
//	grey = round(0.299*R + 0.587*G + 0.114*B)
//
// Rounding is half-to-even. The weights sum to one, so for 8-bit inputs the
// output stays in [0,255]. The only failure is a size mismatch between the
// channels.
func Greyscale(r, g, b *Buffer[int]) (*Buffer[int], error) {
	if !SameSize(r, g) || !SameSize(r, b) {
		return nil, fmt.Errorf("channel sizes differ: r=%dx%d g=%dx%d b=%dx%d",
			r.Width, r.Height, g.Width, g.Height, b.Width, b.Height)
	}

	out := NewBuffer[int](r.Width, r.Height)
	parallel.Line(r.Height, func(start, end int) {
		for i := start * r.Width; i < end*r.Width; i++ {
			v := lumaR*float64(r.Pix[i]) + lumaG*float64(g.Pix[i]) + lumaB*float64(b.Pix[i])
			out.Pix[i] = clampByte(int(math.RoundToEven(v)))
		}
	})
	return out, nil
}

// IsFlat reports whether every sample of the buffer has the same value.
// Normalize maps such a buffer to all zeros.
func IsFlat[T Sample](in *Buffer[T]) bool {
	min, max := in.MinMax()
	return min == max
}

// Normalize stretches the buffer's range affinely so that its minimum maps to
// 0 and its maximum to 255, rounding half-to-even.
//
// A flat buffer (max == min) has no range to stretch; the scale factor is
// taken as zero and the result is the all-zero buffer.
func Normalize[T Sample](in *Buffer[T]) *Buffer[int] {
	out := NewBuffer[int](in.Width, in.Height)

	lo, hi := in.MinMax()
	spread := float64(hi) - float64(lo)
	multiplier := 0.0
	if spread != 0 {
		multiplier = 255 / spread
	}
	min := float64(lo)

	parallel.Line(in.Height, func(start, end int) {
		for i := start * in.Width; i < end*in.Width; i++ {
			v := int(math.RoundToEven((float64(in.Pix[i]) - min) * multiplier))
			if v == -1 {
				v = 0
			}
			out.Pix[i] = clampByte(v)
		}
	})
	return out
}

// StdDevFilter replaces every interior pixel by the population standard
// deviation of the (2*radius+1)^2 window centred on it.
//
// Pixels closer than radius to any edge have no full window and are left at
// 0.0. A uniform window yields exactly 0.
func StdDevFilter(in *Buffer[int], radius int) *Buffer[float64] {
	out := NewBuffer[float64](in.Width, in.Height)
	if radius < 0 || in.Width <= 2*radius || in.Height <= 2*radius {
		return out
	}

	side := 2*radius + 1
	rows := in.Height - 2*radius
	parallel.Line(rows, func(start, end int) {
		window := make([]float64, side*side)
		for y := start + radius; y < end+radius; y++ {
			for x := radius; x < in.Width-radius; x++ {
				k := 0
				for dy := -radius; dy <= radius; dy++ {
					row := in.Row(y + dy)
					for dx := -radius; dx <= radius; dx++ {
						window[k] = float64(row[x+dx])
						k++
					}
				}
				_, variance := stat.PopMeanVariance(window, nil)
				if variance < 0 {
					// Compensated summation can dip a hair below zero.
					variance = 0
				}
				out.Set(x, y, math.Sqrt(variance))
			}
		}
	})
	return out
}

// Threshold maps samples at or above level to 255 and everything else to 0.
func Threshold[T Sample](in *Buffer[T], level float64) *Buffer[int] {
	out := NewBuffer[int](in.Width, in.Height)
	parallel.Line(in.Height, func(start, end int) {
		for i := start * in.Width; i < end*in.Width; i++ {
			if float64(in.Pix[i]) >= level {
				out.Pix[i] = 255
			}
		}
	})
	return out
}

// clampByte constrains v to [0,255].
func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
