package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/plate-finder/internal/detection"
)

// HSLColor is a colour in HSL space, rounded to whole units.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorFrequency represents a colour and its share of the plate pixels.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Lower-case "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Share of pixels with this colour (0-100)
	HSL        HSLColor `json:"hsl"`
}

// PlateColors returns up to count of the most common colours inside box,
// most frequent first. Equal shares are ordered by hex value.
//
// Components are quantized to multiples of 16 before counting so that
// near-identical shades group together, e.g. #F0F0F0 and #FAFAFA.
func PlateColors(img image.Image, box detection.BoundingBox, count int) ([]ColorFrequency, error) {
	bounds := img.Bounds()
	if box.MinX < 0 || box.MinY < 0 || box.MaxX >= bounds.Dx() || box.MaxY >= bounds.Dy() || box.MinX > box.MaxX || box.MinY > box.MaxY {
		return nil, fmt.Errorf("plate box %v outside image bounds %dx%d", box, bounds.Dx(), bounds.Dy())
	}
	if count <= 0 {
		return nil, nil
	}

	counts := make(map[[3]uint8]int)
	total := 0
	for y := box.MinY; y <= box.MaxY; y++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			c, _ := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			r, g, b := c.RGB255()
			counts[[3]uint8{r / 16 * 16, g / 16 * 16, b / 16 * 16}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		c := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}
		h, s, l := c.Hsl()
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			HSL: HSLColor{
				H: int(math.Round(h)) % 360,
				S: int(math.Round(s * 100)),
				L: int(math.Round(l * 100)),
			},
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})
	if len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}
