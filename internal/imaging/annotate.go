package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/plate-finder/internal/detection"
)

// DefaultBoxColor is the overlay colour used when none is given.
const DefaultBoxColor = "#00FF00"

// titleHeight is the height of the caption strip above each debug tile.
const titleHeight = 16

// parseColor parses a "#RRGGBB" colour, falling back to DefaultBoxColor.
func parseColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultBoxColor)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Annotate returns a copy of img with box drawn as a rectangle outline.
//
// Parameters:
//   - img: Source image; it is not modified.
//   - box: Inclusive plate box relative to the image's top-left corner.
//   - hex: Outline colour as "#RRGGBB". Invalid values fall back to green.
//   - thickness: Outline width in pixels, drawn inward from the box edge.
func Annotate(img image.Image, box detection.BoundingBox, hex string, thickness int) *image.RGBA {
	canvas := clone.AsRGBA(img)
	drawBox(canvas, box, parseColor(hex), thickness)
	return canvas
}

// drawBox outlines box on dst, clipping at the image edges.
func drawBox(dst *image.RGBA, box detection.BoundingBox, c color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	b := dst.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(b) {
			dst.SetRGBA(x, y, c)
		}
	}

	for t := 0; t < thickness; t++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			set(x, box.MinY+t)
			set(x, box.MaxY-t)
		}
		for y := box.MinY; y <= box.MaxY; y++ {
			set(box.MinX+t, y)
			set(box.MaxX-t, y)
		}
	}
}

// GreyImage renders a buffer as an 8-bit greyscale image. Samples are rounded
// and clamped to [0,255].
func GreyImage[T detection.Sample](buf *detection.Buffer[T]) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, buf.Width, buf.Height))
	for i, v := range buf.Pix {
		f := math.Round(float64(v))
		switch {
		case f < 0:
			f = 0
		case f > 255:
			f = 255
		}
		img.Pix[i] = uint8(f)
	}
	return img
}

// MaskImage renders foreground (> 0) as white and background as black.
func MaskImage(mask *detection.Buffer[int]) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, mask.Width, mask.Height))
	for i, v := range mask.Pix {
		if v > 0 {
			img.Pix[i] = 255
		}
	}
	return img
}

// LabelImage colours each region of a label map with its own hue; background
// stays black. Hues are spaced by the golden angle so neighbouring label ids
// are easy to tell apart.
func LabelImage(labels *detection.LabelMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, labels.Width, labels.Height))
	palette := map[int]color.RGBA{}

	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			id := labels.At(x, y)
			if id <= 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			c, ok := palette[id]
			if !ok {
				hue := math.Mod(float64(id)*137.508, 360)
				r, g, b := colorful.Hsv(hue, 0.75, 0.95).RGB255()
				c = color.RGBA{R: r, G: g, B: b, A: 255}
				palette[id] = c
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FinalImage renders the closed mask of res with box outlined one pixel wide.
// A nil res or one without a mask gives a black w x h image.
func FinalImage(w, h int, res *detection.Result, box *detection.BoundingBox, hex string) *image.RGBA {
	final := image.Image(image.NewGray(image.Rect(0, 0, w, h)))
	if res != nil && res.Mask != nil {
		final = MaskImage(res.Mask)
	}
	canvas := clone.AsRGBA(final)
	if box != nil {
		drawBox(canvas, *box, parseColor(hex), 1)
	}
	return canvas
}

// DebugPanel lays out the red, green and blue channels and the final mask in
// a 2x2 grid, each tile captioned. When box is non-nil it is drawn on the
// mask tile.
func DebugPanel(ch detection.Channels, res *detection.Result, box *detection.BoundingBox, hex string) *image.NRGBA {
	w, h := ch.Width(), ch.Height()
	finalTile := FinalImage(w, h, res, box, hex)

	tiles := []struct {
		title string
		img   image.Image
	}{
		{"Input red channel", GreyImage(ch.R)},
		{"Input green channel", GreyImage(ch.G)},
		{"Input blue channel", GreyImage(ch.B)},
		{"Final image of detection", finalTile},
	}

	tileH := h + titleHeight
	panel := imaging.New(2*w, 2*tileH, color.White)
	for i, tile := range tiles {
		col, row := i%2, i/2
		captioned := imaging.New(w, tileH, color.White)
		captioned = imaging.Paste(captioned, tile.img, image.Pt(0, titleHeight))
		drawCaption(captioned, tile.title)
		panel = imaging.Paste(panel, captioned, image.Pt(col*w, row*tileH))
	}
	return panel
}

// drawCaption writes text into the caption strip at the top of img.
func drawCaption(img *image.NRGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(2), Y: fixed.I(titleHeight - 4)},
	}
	d.DrawString(text)
}

// SaveImage writes img to path as PNG.
func SaveImage(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
