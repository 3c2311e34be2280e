package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
)

// fakeEngine answers from a table keyed by engine identifier.
type fakeEngine struct {
	texts map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeEngine) Recognize(ctx context.Context, img image.Image, engineID string) (string, error) {
	f.calls = append(f.calls, engineID)
	if err := f.errs[engineID]; err != nil {
		return "", err
	}
	if t, ok := f.texts[engineID]; ok {
		return t, nil
	}
	return "", ErrNoText
}

func testPlate() image.Image {
	return image.NewGray(image.Rect(0, 0, 8, 4))
}

func TestRecognizerFirstEngineWins(t *testing.T) {
	eng := &fakeEngine{texts: map[string]string{"1": "abc 123", "2": "ZZZ"}}
	r := NewRecognizer(eng, []string{"1", "2", "3"}, nil)

	got, err := r.Read(context.Background(), testPlate())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Text != "ABC123" || got.Raw != "abc 123" || got.EngineID != "1" || got.Attempts != 1 {
		t.Errorf("Read() = %+v", got)
	}
	if len(eng.calls) != 1 {
		t.Errorf("engine called %d times, want 1", len(eng.calls))
	}
}

func TestRecognizerFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		eng      *fakeEngine
		wantID   string
		attempts int
	}{
		{
			name:     "no text then text",
			eng:      &fakeEngine{texts: map[string]string{"2": "KX 51 ABC"}},
			wantID:   "2",
			attempts: 2,
		},
		{
			name: "error then text",
			eng: &fakeEngine{
				errs:  map[string]error{"1": errors.New("boom")},
				texts: map[string]string{"2": "KX51ABC"},
			},
			wantID:   "2",
			attempts: 2,
		},
		{
			name:     "punctuation only is skipped",
			eng:      &fakeEngine{texts: map[string]string{"1": " -- ", "2": ".", "3": "kx51abc"}},
			wantID:   "3",
			attempts: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecognizer(tt.eng, []string{"1", "2", "3"}, nil)
			got, err := r.Read(context.Background(), testPlate())
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got.Text != "KX51ABC" {
				t.Errorf("Text = %q, want KX51ABC", got.Text)
			}
			if got.EngineID != tt.wantID || got.Attempts != tt.attempts {
				t.Errorf("EngineID = %s Attempts = %d, want %s %d", got.EngineID, got.Attempts, tt.wantID, tt.attempts)
			}
		})
	}
}

func TestRecognizerExhausted(t *testing.T) {
	last := errors.New("quota exceeded")
	eng := &fakeEngine{errs: map[string]error{"3": last}}
	r := NewRecognizer(eng, []string{"1", "2", "3"}, nil)

	_, err := r.Read(context.Background(), testPlate())
	if !errors.Is(err, ErrNoPlateFound) {
		t.Fatalf("Read() error = %v, want ErrNoPlateFound", err)
	}
	if !errors.Is(err, last) {
		t.Errorf("Read() error = %v, want it to wrap the last engine error", err)
	}
	if len(eng.calls) != 3 {
		t.Errorf("engine called %d times, want 3", len(eng.calls))
	}
}

func TestRecognizerNoEngines(t *testing.T) {
	r := NewRecognizer(&fakeEngine{}, nil, nil)
	if _, err := r.Read(context.Background(), testPlate()); !errors.Is(err, ErrNoPlateFound) {
		t.Errorf("Read() error = %v, want ErrNoPlateFound", err)
	}
}

func TestRecognizerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := &fakeEngine{texts: map[string]string{"1": "ABC"}}
	r := NewRecognizer(eng, []string{"1"}, nil)
	if _, err := r.Read(ctx, testPlate()); !errors.Is(err, context.Canceled) {
		t.Errorf("Read() error = %v, want context.Canceled", err)
	}
	if len(eng.calls) != 0 {
		t.Errorf("engine called after cancellation")
	}
}

func TestCleanPlateText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ab12 cde", "AB12CDE"},
		{"  KX-51\nABC ", "KX51ABC"},
		{"...", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanPlateText(tt.in); got != tt.want {
			t.Errorf("CleanPlateText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
