// Command platefinder locates the licence plate in a photo of a car and
// writes the detection image with the plate outlined.
//
// Usage:
//
//	platefinder [flags] [input.png [output.png]]
//
// Without arguments the sample numberplate1.png is processed and a debug
// panel with the colour channels is written next to the output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-finder/internal/detection"
	"github.com/ironsheep/plate-finder/internal/imaging"
	"github.com/ironsheep/plate-finder/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	defaultInput = "numberplate1.png"
	outputDir    = "output_images"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	cfg        detection.Config
	input      string
	output     string
	defaultRun bool
	ocr        bool
	backend    string
	plateOut   string
	annotated  string
	color      string
	debug      bool
}

// parseArgs parses flags and positional arguments. It returns flag.ErrHelp
// for -h and a nil options with a nil error for -version.
func parseArgs(args []string, stdout, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("platefinder", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := detection.DefaultConfig()
	o := &options{}
	fs.Float64Var(&o.cfg.Threshold, "threshold", def.Threshold, "binarization level for the normalized texture map (0-255)")
	fs.IntVar(&o.cfg.Dilations, "dilations", def.Dilations, "number of 3x3 dilation passes")
	fs.IntVar(&o.cfg.Erosions, "erosions", def.Erosions, "number of 3x3 erosion passes")
	fs.IntVar(&o.cfg.WindowRadius, "radius", def.WindowRadius, "standard deviation window radius")
	fs.BoolVar(&o.ocr, "ocr", false, "read the plate characters with OCR")
	fs.StringVar(&o.backend, "ocr-backend", ocr.BackendSpace, "OCR backend: space or tesseract")
	fs.StringVar(&o.plateOut, "plate-out", "", "write the cropped plate to this file")
	fs.StringVar(&o.annotated, "annotated", "", "write the input image with the plate outlined to this file")
	fs.StringVar(&o.color, "color", imaging.DefaultBoxColor, "outline colour as #RRGGBB")
	fs.BoolVar(&o.debug, "debug", false, "enable debug logging")
	version := fs.Bool("version", false, "print version information")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: platefinder [flags] [input.png [output.png]]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintln(stderr, "  PLATE_LOG_LEVEL=debug    Enable debug logging")
		fmt.Fprintln(stderr, "  OCR_SPACE_API_KEY        API key for -ocr-backend=space")
		fmt.Fprintln(stderr, "  OCR_SPACE_URL            Override the OCR.space endpoint")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *version {
		fmt.Fprintf(stdout, "platefinder %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil, nil
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		o.input = defaultInput
		o.defaultRun = true
	case 1, 2:
		o.input = rest[0]
	default:
		fs.Usage()
		return nil, fmt.Errorf("expected at most 2 arguments, got %d", len(rest))
	}
	if len(rest) == 2 {
		o.output = rest[1]
	} else {
		o.output = defaultOutput(o.input)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// defaultOutput maps car.png to output_images/car_output.png.
func defaultOutput(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+"_output.png")
}

// debugPath maps out.png to out_debug.png.
func debugPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_debug.png"
}

// initLogger initializes the logger with appropriate level
func initLogger(debug bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debug || os.Getenv("PLATE_LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "platefinder: %v\n", err)
		return 2
	}
	if o == nil {
		return 0
	}

	logger := initLogger(o.debug, stderr)
	log := logger.WithField("input", o.input)
	if err := process(ctx, o, stdout, logger); err != nil {
		log.WithError(err).Error("plate detection failed")
		return 1
	}
	return 0
}

// process runs detection on o.input and writes every requested artefact.
func process(ctx context.Context, o *options, stdout io.Writer, logger *logrus.Logger) error {
	log := logger.WithField("input", o.input)

	if dir := filepath.Dir(o.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cache := imaging.NewImageCache()
	img, err := cache.Load(o.input)
	if err != nil {
		return err
	}
	ch, err := cache.LoadChannels(o.input)
	if err != nil {
		return err
	}

	res, runErr := detection.NewPipeline(o.cfg, log).Run(ctx, ch)
	if runErr != nil && !errors.Is(runErr, detection.ErrNoComponentFound) {
		return runErr
	}

	var box *detection.BoundingBox
	if runErr == nil {
		box = &res.Box
	}

	w, h := ch.Width(), ch.Height()
	if err := imaging.SaveImage(o.output, imaging.FinalImage(w, h, res, box, o.color)); err != nil {
		return err
	}
	log.WithField("output", o.output).Debug("detection image written")

	if o.defaultRun {
		panel := imaging.DebugPanel(ch, res, box, o.color)
		path := debugPath(o.output)
		if err := imaging.SaveImage(path, panel); err != nil {
			return err
		}
		log.WithField("panel", path).Info("debug panel written")
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(stdout, "plate: %s (%dx%d)\n", res.Box, res.Box.Width(), res.Box.Height())

	if o.annotated != "" {
		if err := imaging.SaveImage(o.annotated, imaging.Annotate(img, res.Box, o.color, 2)); err != nil {
			return err
		}
	}
	if o.plateOut != "" {
		if err := imaging.SavePlate(o.plateOut, img, res.Box); err != nil {
			return err
		}
	}

	if o.ocr {
		rec, err := ocr.NewFromEnv(o.backend, os.Getenv, logger)
		if err != nil {
			return err
		}
		plate, err := imaging.CropPlate(img, res.Box, 2.0)
		if err != nil {
			return err
		}
		reading, err := rec.Read(ctx, plate)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "text: %s\n", reading.Text)
	}
	return nil
}
