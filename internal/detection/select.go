package detection

import (
	"fmt"
	"image"
)

// BoundingBox is an axis-aligned box in pixel coordinates. All four edges are
// inclusive: a single pixel at (x, y) has MinX == MaxX == x and
// MinY == MaxY == y.
type BoundingBox struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width is the number of columns covered by the box.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX + 1 }

// Height is the number of rows covered by the box.
func (b BoundingBox) Height() int { return b.MaxY - b.MinY + 1 }

// Rect converts the box to a half-open image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

// String formats the box as "(minX,minY)-(maxX,maxY)".
func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// SelectLargest returns the label with the most pixels. Ties go to the label
// discovered first, i.e. the smallest id.
func SelectLargest(stats ComponentStats) (int, error) {
	if len(stats) == 0 {
		return 0, ErrNoComponentFound
	}

	best := stats[0]
	for _, c := range stats[1:] {
		if c.Count > best.Count || (c.Count == best.Count && c.Label < best.Label) {
			best = c
		}
	}
	return best.Label, nil
}

// Extract scans labels once and returns the extent of every pixel carrying
// label. It fails with ErrInvalidLabel if the label never occurs.
func Extract(labels *LabelMap, label int) (BoundingBox, error) {
	if label <= 0 {
		return BoundingBox{}, fmt.Errorf("label %d: %w", label, ErrInvalidLabel)
	}

	box := BoundingBox{MinX: labels.Width, MinY: labels.Height, MaxX: -1, MaxY: -1}
	found := false

	for y := 0; y < labels.Height; y++ {
		row := labels.Row(y)
		for x, v := range row {
			if v != label {
				continue
			}
			found = true
			if x < box.MinX {
				box.MinX = x
			}
			if x > box.MaxX {
				box.MaxX = x
			}
			if y < box.MinY {
				box.MinY = y
			}
			if y > box.MaxY {
				box.MaxY = y
			}
		}
	}

	if !found {
		return BoundingBox{}, fmt.Errorf("label %d: %w", label, ErrInvalidLabel)
	}
	return box, nil
}
