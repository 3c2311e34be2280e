package detection

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Channels holds the red, green and blue sample buffers of a decoded image.
type Channels struct {
	R *Buffer[int]
	G *Buffer[int]
	B *Buffer[int]
}

// Width returns the width shared by the channels.
func (c Channels) Width() int { return c.R.Width }

// Height returns the height shared by the channels.
func (c Channels) Height() int { return c.R.Height }

// Result carries the output of every stage of one pipeline run.
type Result struct {
	Grey       *Buffer[int]     `json:"-"`
	Contrast   *Buffer[int]     `json:"-"`
	Texture    *Buffer[float64] `json:"-"`
	Normalized *Buffer[int]     `json:"-"`
	Binary     *Buffer[int]     `json:"-"`
	Dilated    *Buffer[int]     `json:"-"`
	Mask       *Buffer[int]     `json:"-"`
	Labels     *LabelMap        `json:"-"`

	// Components lists every region that survived morphology.
	Components ComponentStats `json:"components"`

	// Plate is the label chosen as the plate candidate (0 if none).
	Plate int `json:"plate_label"`

	// Box is the extent of the plate candidate.
	Box BoundingBox `json:"bounding_box"`
}

// Pipeline locates the plate candidate in an RGB image using the fixed
// sequence of stages: greyscale, normalize, standard deviation filter,
// normalize, threshold, dilate, erode, label, select.
type Pipeline struct {
	Config Config
	Logger logrus.FieldLogger
}

// NewPipeline returns a pipeline for cfg. A nil logger discards output.
func NewPipeline(cfg Config, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Pipeline{Config: cfg, Logger: logger}
}

// Run executes every stage on ch.
//
// When no region survives morphology Run returns the partially filled Result
// (all buffers, empty Components) together with an error wrapping
// ErrNoComponentFound, so callers can still render the intermediate stages.
// ctx is checked between stages; a stage in progress is not interrupted.
func (p *Pipeline) Run(ctx context.Context, ch Channels) (*Result, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := p.Logger.WithFields(logrus.Fields{
		"width":  ch.Width(),
		"height": ch.Height(),
	})

	res := &Result{}
	var err error

	steps := []struct {
		name string
		run  func()
	}{
		{"normalize", func() {
			if IsFlat(res.Grey) {
				log.Debug("flat greyscale input, contrast stretch yields zeros")
			}
			res.Contrast = Normalize(res.Grey)
		}},
		{"stddev", func() { res.Texture = StdDevFilter(res.Contrast, p.Config.WindowRadius) }},
		{"normalize-texture", func() { res.Normalized = Normalize(res.Texture) }},
		{"threshold", func() { res.Binary = Threshold(res.Normalized, p.Config.Threshold) }},
		{"dilate", func() { res.Dilated = DilateN(res.Binary, p.Config.Dilations) }},
		{"erode", func() { res.Mask = ErodeN(res.Dilated, p.Config.Erosions) }},
		{"label", func() { res.Labels, res.Components = Label(res.Mask) }},
	}

	res.Grey, err = Greyscale(ch.R, ch.G, ch.B)
	if err != nil {
		return nil, fmt.Errorf("greyscale: %w", err)
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.run()
		log.WithField("stage", s.name).Debug("stage complete")
	}

	res.Plate, err = SelectLargest(res.Components)
	if err != nil {
		log.Debug("no component survived morphology")
		return res, fmt.Errorf("select plate: %w", err)
	}

	res.Box, err = Extract(res.Labels, res.Plate)
	if err != nil {
		return res, fmt.Errorf("extract bounding box: %w", err)
	}

	log.WithFields(logrus.Fields{
		"components": len(res.Components),
		"label":      res.Plate,
		"pixels":     res.Components.Count(res.Plate),
		"box":        res.Box.String(),
	}).Info("plate candidate located")
	return res, nil
}

// Detect runs the default pipeline on ch and returns just the bounding box.
func Detect(ctx context.Context, ch Channels) (BoundingBox, error) {
	res, err := NewPipeline(DefaultConfig(), nil).Run(ctx, ch)
	if err != nil {
		return BoundingBox{}, err
	}
	return res.Box, nil
}
