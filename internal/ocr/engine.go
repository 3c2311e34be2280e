package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// ErrNoText is returned by an Engine when the image was processed but no text
// was found. The Recognizer treats it as a cue to try the next engine.
var ErrNoText = errors.New("no text found")

// ErrNoPlateFound is returned by Recognizer.Read once every configured
// engine has been tried without producing plate text.
var ErrNoPlateFound = errors.New("no plate text found")

// Engine performs text extraction on an image. engineID selects a
// recognition mode specific to the implementation, e.g. an OCR.space engine
// number or a Tesseract page segmentation mode.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, engineID string) (string, error)
}

// Reading is the outcome of a successful Recognizer.Read.
type Reading struct {
	// Text is the cleaned plate text: upper-case letters and digits only.
	Text string `json:"text"`

	// Raw is the text exactly as returned by the engine.
	Raw string `json:"raw"`

	// EngineID is the engine identifier that produced the text.
	EngineID string `json:"engine_id"`

	// Attempts is the number of engine identifiers tried, including the
	// successful one.
	Attempts int `json:"attempts"`
}

// Recognizer reads plate text with a fixed fallback order of engine
// identifiers.
type Recognizer struct {
	Engine Engine
	Order  []string
	Logger logrus.FieldLogger
}

// NewRecognizer returns a recognizer trying order in sequence. A nil logger
// discards output.
func NewRecognizer(engine Engine, order []string, logger logrus.FieldLogger) *Recognizer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Recognizer{Engine: engine, Order: order, Logger: logger}
}

// Read tries each engine identifier in Order until one yields plate text.
//
// An engine that returns ErrNoText, any other error, or text with no letters
// or digits is skipped and the next identifier is tried. Context
// cancellation stops the loop immediately. When every identifier has been
// tried the error wraps ErrNoPlateFound and the last engine error.
func (r *Recognizer) Read(ctx context.Context, img image.Image) (*Reading, error) {
	if len(r.Order) == 0 {
		return nil, fmt.Errorf("%w: no engines configured", ErrNoPlateFound)
	}

	var lastErr error
	for i, id := range r.Order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := r.Logger.WithField("engine", id)
		raw, err := r.Engine.Recognize(ctx, img, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.WithError(err).Debug("engine failed, trying next")
			lastErr = err
			continue
		}

		text := CleanPlateText(raw)
		if text == "" {
			log.Debug("engine returned no plate characters, trying next")
			lastErr = ErrNoText
			continue
		}

		log.WithField("text", text).Info("plate text recognized")
		return &Reading{Text: text, Raw: raw, EngineID: id, Attempts: i + 1}, nil
	}

	return nil, fmt.Errorf("%w (engines %s): %w", ErrNoPlateFound, strings.Join(r.Order, ","), lastErr)
}

// CleanPlateText keeps only letters and digits, upper-cased.
func CleanPlateText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
