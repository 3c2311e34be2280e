package ocr

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Backend names accepted by NewFromEnv.
const (
	BackendSpace     = "space"
	BackendTesseract = "tesseract"
)

// Environment variables read by NewFromEnv.
const (
	EnvSpaceAPIKey    = "OCR_SPACE_API_KEY"
	EnvSpaceURL       = "OCR_SPACE_URL"
	EnvTessdataPrefix = "TESSDATA_PREFIX"
)

// ErrMissingAPIKey is returned when the OCR.space backend is chosen without
// an API key in the environment.
var ErrMissingAPIKey = errors.New(EnvSpaceAPIKey + " is not set")

// NewFromEnv builds a Recognizer for the named backend with its default
// engine order. getenv is usually os.Getenv; nil means os.Getenv.
func NewFromEnv(backend string, getenv func(string) string, logger logrus.FieldLogger) (*Recognizer, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch strings.ToLower(backend) {
	case BackendSpace, "ocrspace", "":
		key := getenv(EnvSpaceAPIKey)
		if key == "" {
			return nil, ErrMissingAPIKey
		}
		e := NewSpaceEngine(key)
		if u := getenv(EnvSpaceURL); u != "" {
			e.URL = u
		}
		return NewRecognizer(e, DefaultSpaceOrder, logger), nil

	case BackendTesseract:
		e := NewTesseractEngine("eng")
		e.TessdataPrefix = getenv(EnvTessdataPrefix)
		return NewRecognizer(e, DefaultTesseractOrder, logger), nil

	default:
		return nil, fmt.Errorf("unknown OCR backend %q (want %s or %s)", backend, BackendSpace, BackendTesseract)
	}
}
