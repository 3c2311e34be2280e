package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/plate-finder/internal/detection"
)

// CropResult contains the cropped plate image data
type CropResult struct {
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Box         detection.BoundingBox `json:"bounding_box"`
	ImageBase64 string                `json:"image_base64"`
	MimeType    string                `json:"mime_type"`
}

// CropPlate extracts the pixels covered by box from img. The box is
// inclusive on all sides and relative to the image's top-left corner.
// A scale other than 1 resizes the crop with a Lanczos filter.
func CropPlate(img image.Image, box detection.BoundingBox, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if box.MinX < 0 || box.MinY < 0 || box.MaxX >= w || box.MaxY >= h {
		return nil, fmt.Errorf("plate box %v outside image bounds %dx%d", box, w, h)
	}
	if box.MinX > box.MaxX || box.MinY > box.MaxY {
		return nil, fmt.Errorf("invalid plate box %v", box)
	}

	rect := box.Rect().Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}

// EncodePlate crops the plate and returns it as a base64 PNG.
func EncodePlate(img image.Image, box detection.BoundingBox, scale float64) (*CropResult, error) {
	cropped, err := CropPlate(img, box, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode plate image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		Box:         box,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SavePlate crops the plate and writes it to path. The format follows the
// file extension.
func SavePlate(path string, img image.Image, box detection.BoundingBox) error {
	cropped, err := CropPlate(img, box, 1.0)
	if err != nil {
		return err
	}
	if err := imaging.Save(cropped, path); err != nil {
		return fmt.Errorf("failed to save plate image: %w", err)
	}
	return nil
}
