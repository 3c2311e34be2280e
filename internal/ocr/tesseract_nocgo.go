//go:build !cgo

package ocr

import (
	"context"
	"errors"
	"image"
)

// DefaultTesseractOrder lists the page segmentation modes tried for a plate
// crop.
var DefaultTesseractOrder = []string{"7", "8", "6"}

// errTesseractUnavailable is returned when the binary was built without cgo.
var errTesseractUnavailable = errors.New("tesseract support not compiled in (build with CGO_ENABLED=1)")

// TesseractEngine is unavailable without cgo; Recognize always fails.
type TesseractEngine struct {
	Language       string
	TessdataPrefix string
}

// NewTesseractEngine returns an engine for language.
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{Language: language}
}

// Recognize implements Engine.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, engineID string) (string, error) {
	return "", errTesseractUnavailable
}
