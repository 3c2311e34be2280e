//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultTesseractOrder lists the page segmentation modes tried for a plate
// crop: single line, single word, then uniform block.
var DefaultTesseractOrder = []string{"7", "8", "6"}

// plateWhitelist restricts Tesseract to characters that appear on plates.
const plateWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TesseractEngine runs the local Tesseract library. The engine identifier is
// a page segmentation mode number.
type TesseractEngine struct {
	// Language is the Tesseract language code, "eng" when empty.
	Language string

	// TessdataPrefix overrides the tessdata directory when set.
	TessdataPrefix string
}

// NewTesseractEngine returns an engine for language.
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{Language: language}
}

// Recognize implements Engine.
//
// The image is encoded with Recompress without a size limit and handed to
// Tesseract from memory; no temporary file is written.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, engineID string) (string, error) {
	psm, err := strconv.Atoi(engineID)
	if err != nil {
		return "", fmt.Errorf("invalid page segmentation mode %q: %w", engineID, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	enc, err := Recompress(img, 0)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(plateWhitelist); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(enc.Data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
