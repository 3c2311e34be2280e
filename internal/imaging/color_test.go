package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/plate-finder/internal/detection"
)

func TestPlateColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case x < 6:
				img.Set(x, y, color.White)
			case x < 9:
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			default:
				img.Set(x, y, color.RGBA{0, 0, 250, 255})
			}
		}
	}
	box := detection.BoundingBox{MinX: 0, MinY: 0, MaxX: 9, MaxY: 3}

	got, err := PlateColors(img, box, 5)
	if err != nil {
		t.Fatalf("PlateColors failed: %v", err)
	}

	want := []struct {
		hex string
		pct float64
	}{
		{"#f0f0f0", 60},
		{"#f00000", 30},
		{"#0000f0", 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d colours, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Hex != w.hex || math.Abs(got[i].Percentage-w.pct) > 1e-9 {
			t.Errorf("colour %d: got %s %.1f%%, want %s %.0f%%", i, got[i].Hex, got[i].Percentage, w.hex, w.pct)
		}
	}
	if got[0].HSL.S != 0 || got[0].HSL.L != 94 {
		t.Errorf("white HSL: got %+v", got[0].HSL)
	}
	if got[1].HSL.H != 0 || got[1].HSL.S != 100 {
		t.Errorf("red HSL: got %+v", got[1].HSL)
	}
	if got[2].HSL.H != 240 {
		t.Errorf("blue hue: got %d, want 240", got[2].HSL.H)
	}
}

func TestPlateColors_SubBoxAndCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 4))
	for x := 0; x < 10; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 25), 0, 0, 255})
		}
	}

	got, err := PlateColors(img, detection.BoundingBox{MinX: 2, MinY: 1, MaxX: 5, MaxY: 2}, 2)
	if err != nil {
		t.Fatalf("PlateColors failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d colours, want 2", len(got))
	}
	// Four distinct columns of equal share: ties fall back to hex order.
	if got[0].Percentage != 25 || got[0].Hex > got[1].Hex {
		t.Errorf("got %+v", got)
	}
}

func TestPlateColors_Errors(t *testing.T) {
	img := createInMemoryImage(5, 5, color.White)

	if _, err := PlateColors(img, detection.BoundingBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 4}, 3); err == nil {
		t.Error("expected error for box past the right edge")
	}
	got, err := PlateColors(img, detection.BoundingBox{MaxX: 4, MaxY: 4}, 0)
	if err != nil || got != nil {
		t.Errorf("count 0: got %v, %v", got, err)
	}
}
