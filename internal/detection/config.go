package detection

import "fmt"

// Config holds the tunable constants of the detection pipeline.
type Config struct {
	// Threshold is the binarization level applied to the normalized
	// texture buffer. Samples at or above it become foreground.
	Threshold float64 `json:"threshold"`

	// Dilations is the number of 3x3 dilation passes.
	Dilations int `json:"dilations"`

	// Erosions is the number of 3x3 erosion passes run after dilation.
	Erosions int `json:"erosions"`

	// WindowRadius is the half-width of the standard deviation window;
	// 2 gives a 5x5 window.
	WindowRadius int `json:"window_radius"`
}

// DefaultConfig returns the reference settings: threshold 150, five
// dilations, five erosions and a 5x5 variance window.
func DefaultConfig() Config {
	return Config{
		Threshold:    150,
		Dilations:    5,
		Erosions:     5,
		WindowRadius: 2,
	}
}

// Validate rejects settings the stages cannot honour.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold %.1f outside [0,255]", c.Threshold)
	}
	if c.Dilations < 0 {
		return fmt.Errorf("dilations must be >= 0, got %d", c.Dilations)
	}
	if c.Erosions < 0 {
		return fmt.Errorf("erosions must be >= 0, got %d", c.Erosions)
	}
	if c.WindowRadius < 1 {
		return fmt.Errorf("window radius must be >= 1, got %d", c.WindowRadius)
	}
	return nil
}
