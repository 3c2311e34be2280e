package detection

import "testing"

func TestLabel_TwoSquares(t *testing.T) {
	mask := maskFromRows(t,
		"..........",
		".###......",
		".###..###.",
		".###..###.",
		"......###.",
		"..........",
	)

	labels, stats := Label(mask)

	if len(stats) != 2 {
		t.Fatalf("components: got %d, want 2", len(stats))
	}
	for _, c := range stats {
		if c.Count != 9 {
			t.Errorf("label %d: got %d pixels, want 9", c.Label, c.Count)
		}
	}
	if labels.At(1, 1) != 1 {
		t.Errorf("first square: got label %d, want 1", labels.At(1, 1))
	}
	if labels.At(6, 2) != 2 {
		t.Errorf("second square: got label %d, want 2", labels.At(6, 2))
	}
	if labels.At(0, 0) != 0 {
		t.Error("background should stay unlabelled")
	}
}

func TestLabel_DiagonalIsNotConnected(t *testing.T) {
	mask := maskFromRows(t,
		"#.",
		".#",
	)
	_, stats := Label(mask)
	if len(stats) != 2 {
		t.Errorf("components: got %d, want 2 (4-connectivity)", len(stats))
	}
}

func TestLabel_ConcaveRegion(t *testing.T) {
	// The right arm of the U is reached before the bottom row joins it to
	// the left arm; it must still share one label.
	mask := maskFromRows(t,
		"#...#",
		"#...#",
		"#####",
	)
	labels, stats := Label(mask)
	if len(stats) != 1 {
		t.Fatalf("components: got %d, want 1", len(stats))
	}
	if stats[0].Count != 9 {
		t.Errorf("pixels: got %d, want 9", stats[0].Count)
	}
	if labels.At(4, 0) != 1 {
		t.Errorf("right arm: got label %d, want 1", labels.At(4, 0))
	}
}

func TestLabel_DiscoveryOrder(t *testing.T) {
	mask := maskFromRows(t,
		"....#",
		"#....",
		"..#..",
	)
	labels, stats := Label(mask)

	want := map[[2]int]int{
		{4, 0}: 1,
		{0, 1}: 2,
		{2, 2}: 3,
	}
	for pos, id := range want {
		if got := labels.At(pos[0], pos[1]); got != id {
			t.Errorf("(%d,%d): got label %d, want %d", pos[0], pos[1], got, id)
		}
	}

	ids := stats.Labels()
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("stats[%d]: got label %d, want %d", i, id, i+1)
		}
	}
}

func TestLabel_DistinctLabelsNeverTouch(t *testing.T) {
	mask := maskFromRows(t,
		"##.#.##.#",
		"#..#..#.#",
		".##.#.###",
		"#.#.#....",
		"###..####",
	)
	labels, _ := Label(mask)

	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			a := labels.At(x, y)
			if a == 0 {
				continue
			}
			for _, d := range fourNeighbours {
				nx, ny := x+d.x, y+d.y
				if !labels.InBounds(nx, ny) {
					continue
				}
				if b := labels.At(nx, ny); b != 0 && b != a {
					t.Errorf("labels %d and %d touch at (%d,%d)", a, b, x, y)
				}
			}
		}
	}
}

func TestLabel_EmptyMask(t *testing.T) {
	labels, stats := Label(NewBuffer[int](6, 4))
	if len(stats) != 0 {
		t.Errorf("components: got %d, want 0", len(stats))
	}
	if labels.CountNonZero() != 0 {
		t.Error("empty mask should produce an all-zero label map")
	}
}

func TestComponentStats_Count(t *testing.T) {
	stats := ComponentStats{{Label: 1, Count: 4}, {Label: 2, Count: 11}}
	if stats.Count(2) != 11 {
		t.Errorf("Count(2): got %d, want 11", stats.Count(2))
	}
	if stats.Count(5) != 0 {
		t.Errorf("Count(5): got %d, want 0", stats.Count(5))
	}
}
