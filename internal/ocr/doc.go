// Package ocr reads the characters of a cropped licence plate.
//
// Two engines implement the Engine interface:
//
//   - SpaceEngine posts the image to the OCR.space HTTP API. Its engine
//     identifiers are the service's OCREngine numbers ("1", "2", "3").
//   - TesseractEngine runs Tesseract in-process through gosseract. Its engine
//     identifiers are page segmentation modes ("7", "8", "6"). Without cgo
//     the engine compiles to a stub that always fails.
//
// A Recognizer tries the identifiers of one engine in a fixed order and
// returns the first non-empty plate text. ErrNoPlateFound is returned once
// every identifier has been tried.
//
// # Upload Size
//
// The free OCR.space tier rejects files above 1 MiB. Recompress keeps PNG when
// it fits and otherwise falls back to JPEG at decreasing quality, then to a
// smaller image.
//
// # Prerequisites
//
// TesseractEngine needs the Tesseract library and language data:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
package ocr
