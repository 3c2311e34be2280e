package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/plate-finder/internal/detection"
)

// writeCarImage writes a flat grey PNG with a checkerboard block at
// [20,40) x [14,26) and returns its path.
func writeCarImage(t *testing.T, dir string, textured bool) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{120, 120, 120, 255}
			if textured && x >= 20 && x < 40 && y >= 14 && y < 26 {
				if (x+y)%2 == 0 {
					c = color.RGBA{255, 255, 255, 255}
				} else {
					c = color.RGBA{0, 0, 0, 255}
				}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, "car.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestRun_DetectsPlate(t *testing.T) {
	dir := t.TempDir()
	input := writeCarImage(t, dir, true)
	output := filepath.Join(dir, "out", "result.png")
	plate := filepath.Join(dir, "plate.png")
	annotated := filepath.Join(dir, "annotated.png")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-plate-out", plate, "-annotated", annotated, input, output}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	if !strings.HasPrefix(stdout.String(), "plate: (") {
		t.Errorf("stdout = %q, want plate box", stdout.String())
	}
	for _, p := range []string{output, plate, annotated} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to be written: %v", p, err)
		}
	}
	if _, err := os.Stat(debugPath(output)); err == nil {
		t.Error("debug panel should only be written in default mode")
	}
}

func TestRun_NoPlate(t *testing.T) {
	dir := t.TempDir()
	input := writeCarImage(t, dir, false)
	output := filepath.Join(dir, "result.png")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{input, output}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), detection.ErrNoComponentFound.Error()) {
		t.Errorf("stderr does not mention the missing component:\n%s", stderr.String())
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("detection image should still be written: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing input", []string{filepath.Join(dir, "nope.png"), filepath.Join(dir, "o.png")}, 1},
		{"too many args", []string{"a.png", "b.png", "c.png"}, 2},
		{"bad threshold", []string{"-threshold", "300", "a.png"}, 2},
		{"bad radius", []string{"-radius", "0", "a.png"}, 2},
		{"unknown flag", []string{"-nope"}, 2},
		{"help", []string{"-h"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d\nstderr: %s", tt.args, got, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d", code)
	}
	if !strings.Contains(stdout.String(), "platefinder "+Version) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestParseArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer

	o, err := parseArgs(nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if !o.defaultRun || o.input != defaultInput {
		t.Errorf("default run: got input %q defaultRun %v", o.input, o.defaultRun)
	}
	if o.output != filepath.Join(outputDir, "numberplate1_output.png") {
		t.Errorf("output = %q", o.output)
	}
	if o.cfg != detection.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", o.cfg)
	}

	o, err = parseArgs([]string{"-dilations", "3", "-erosions", "4", "cars/red.png"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if o.defaultRun {
		t.Error("an explicit input disables the default run")
	}
	if o.cfg.Dilations != 3 || o.cfg.Erosions != 4 {
		t.Errorf("cfg = %+v", o.cfg)
	}
	if o.output != filepath.Join(outputDir, "red_output.png") {
		t.Errorf("output = %q", o.output)
	}
}

func TestProcess_DefaultRunWritesPanel(t *testing.T) {
	dir := t.TempDir()
	o := &options{
		cfg:        detection.DefaultConfig(),
		input:      writeCarImage(t, dir, true),
		output:     filepath.Join(dir, "car_output.png"),
		defaultRun: true,
		color:      "#00FF00",
	}

	var stdout, stderr bytes.Buffer
	if err := process(context.Background(), o, &stdout, initLogger(false, &stderr)); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "car_output_debug.png"))
	if err != nil {
		t.Fatalf("debug panel not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("bad panel: %v", err)
	}
	if cfg.Width != 120 {
		t.Errorf("panel width = %d, want 120", cfg.Width)
	}
}
