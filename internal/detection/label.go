package detection

import "github.com/gammazero/deque"

// LabelMap assigns every pixel of a mask a label id. Zero is background;
// positive ids number the connected regions in raster discovery order.
type LabelMap = Buffer[int]

// Component is the pixel count of one labelled region.
type Component struct {
	Label int `json:"label"`
	Count int `json:"count"`
}

// ComponentStats lists the regions of a LabelMap in discovery order, which is
// also ascending label order.
type ComponentStats []Component

// Count returns the pixel count recorded for label, or 0 if it is unknown.
func (s ComponentStats) Count(label int) int {
	for _, c := range s {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// Labels returns the label ids in discovery order.
func (s ComponentStats) Labels() []int {
	ids := make([]int, len(s))
	for i, c := range s {
		ids[i] = c.Label
	}
	return ids
}

// cell is a pixel position on the fill frontier.
type cell struct {
	x, y int
}

// 4-connected neighbour offsets. Morphology uses all 8 neighbours; labeling
// uses only these.
var fourNeighbours = [4]cell{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

// Label finds the 4-connected foreground regions of mask (foreground is any
// sample > 0) and returns the label map together with the per-label pixel
// counts.
//
// The mask is scanned top-to-bottom, left-to-right. Each unvisited foreground
// pixel seeds a breadth-first fill over a FIFO frontier; every pixel the fill
// reaches receives the next label id, starting at 1. Labels are therefore
// reproducible and ordered by the raster position of each region's first
// pixel.
func Label(mask *Buffer[int]) (*LabelMap, ComponentStats) {
	w, h := mask.Width, mask.Height
	labels := NewBuffer[int](w, h)
	visited := make([]bool, w*h)
	frontier := deque.New[cell]()

	next := 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if visited[i] {
				continue
			}
			if mask.Pix[i] <= 0 {
				visited[i] = true
				continue
			}
			fill(mask, labels, visited, frontier, x, y, next)
			next++
		}
	}

	return labels, countLabels(labels, next-1)
}

// fill grows one region from (x, y), writing id into labels.
func fill(mask, labels *Buffer[int], visited []bool, frontier *deque.Deque[cell], x, y, id int) {
	w := mask.Width
	visited[y*w+x] = true
	frontier.PushBack(cell{x, y})

	for frontier.Len() > 0 {
		c := frontier.PopFront()
		labels.Set(c.x, c.y, id)

		for _, d := range fourNeighbours {
			nx, ny := c.x+d.x, c.y+d.y
			if !mask.InBounds(nx, ny) {
				continue
			}
			j := ny*w + nx
			if visited[j] || mask.Pix[j] <= 0 {
				continue
			}
			visited[j] = true
			frontier.PushBack(cell{nx, ny})
		}
	}
}

// countLabels tallies the occurrences of each positive label in a second
// full pass over the map.
func countLabels(labels *LabelMap, n int) ComponentStats {
	counts := make([]int, n+1)
	for _, v := range labels.Pix {
		if v > 0 {
			counts[v]++
		}
	}

	stats := make(ComponentStats, 0, n)
	for id := 1; id <= n; id++ {
		stats = append(stats, Component{Label: id, Count: counts[id]})
	}
	return stats
}
