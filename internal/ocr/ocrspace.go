package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultSpaceURL is the OCR.space parse endpoint.
const DefaultSpaceURL = "https://api.ocr.space/parse/image"

// DefaultSpaceOrder lists the OCR.space engines tried, in order.
var DefaultSpaceOrder = []string{"1", "2", "3"}

// SpaceEngine calls the OCR.space HTTP API. The engine identifier is passed
// through as the OCREngine form field.
type SpaceEngine struct {
	APIKey   string
	URL      string
	Language string

	// MaxUploadBytes bounds the encoded upload; see Recompress.
	MaxUploadBytes int

	Client *http.Client
}

// NewSpaceEngine returns an engine using apiKey against DefaultSpaceURL.
func NewSpaceEngine(apiKey string) *SpaceEngine {
	return &SpaceEngine{
		APIKey:         apiKey,
		URL:            DefaultSpaceURL,
		Language:       "eng",
		MaxUploadBytes: DefaultMaxUploadBytes,
		Client:         &http.Client{Timeout: 30 * time.Second},
	}
}

// spaceResponse is the subset of the OCR.space reply that is used.
type spaceResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// errorText flattens ErrorMessage, which the API sends either as a string or
// as an array of strings.
func (r *spaceResponse) errorText() string {
	if len(r.ErrorMessage) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(r.ErrorMessage, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var s string
	if err := json.Unmarshal(r.ErrorMessage, &s); err == nil {
		return s
	}
	return string(r.ErrorMessage)
}

// Recognize implements Engine.
func (e *SpaceEngine) Recognize(ctx context.Context, img image.Image, engineID string) (string, error) {
	enc, err := Recompress(img, e.MaxUploadBytes)
	if err != nil {
		return "", err
	}

	body, contentType, err := e.form(enc, engineID)
	if err != nil {
		return "", err
	}

	url := e.URL
	if url == "" {
		url = DefaultSpaceURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OCR service returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var parsed spaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR engine %s: %s", engineID, parsed.errorText())
	}

	var texts []string
	for _, r := range parsed.ParsedResults {
		if t := strings.TrimSpace(r.ParsedText); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(texts, "\n"), nil
}

// form builds the multipart upload body.
func (e *SpaceEngine) form(enc *Encoded, engineID string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	fields := [][2]string{
		{"apikey", e.APIKey},
		{"language", lang},
		{"OCREngine", engineID},
		{"scale", "true"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f[0], err)
		}
	}

	part, err := w.CreateFormFile("file", "plate"+enc.Ext)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(enc.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
