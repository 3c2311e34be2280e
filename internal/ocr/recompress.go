package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxUploadBytes is the upload limit of the OCR.space free tier.
const DefaultMaxUploadBytes = 1024 * 1024

// jpegQualities is the sequence of qualities tried when a PNG is too large.
var jpegQualities = []int{90, 75, 60, 45, 30}

// Encoded is an image ready to upload.
type Encoded struct {
	Data     []byte
	MimeType string
	Ext      string
}

// Recompress encodes img as PNG and, if that exceeds maxBytes, re-encodes it
// as JPEG with decreasing quality. As a last resort the image is halved in
// size and the JPEG ladder is tried again. maxBytes <= 0 disables the limit.
func Recompress(img image.Image, maxBytes int) (*Encoded, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	if maxBytes <= 0 || buf.Len() <= maxBytes {
		return &Encoded{Data: buf.Bytes(), MimeType: "image/png", Ext: ".png"}, nil
	}

	src := img
	for attempt := 0; attempt < 4; attempt++ {
		for _, q := range jpegQualities {
			buf.Reset()
			if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
				return nil, fmt.Errorf("failed to encode JPEG: %w", err)
			}
			if buf.Len() <= maxBytes {
				return &Encoded{Data: buf.Bytes(), MimeType: "image/jpeg", Ext: ".jpg"}, nil
			}
		}
		w, h := src.Bounds().Dx()/2, src.Bounds().Dy()/2
		if w < 1 || h < 1 {
			break
		}
		src = imaging.Resize(src, w, h, imaging.Lanczos)
	}

	return nil, fmt.Errorf("image does not fit in %d bytes", maxBytes)
}
