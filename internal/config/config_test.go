package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestDecoder_Stream(t *testing.T) {
	stream := `generations: 2
step: 50
canvas:
  format: svg
---
angle: "180/7"
limit:
  length: 1000
`
	dec := NewDecoder(strings.NewReader(stream))

	first, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if first.Generations != 2 || first.Step != 50 || first.Canvas.Format != FormatSVG {
		t.Errorf("first document = %+v", first)
	}
	if first.Canvas.Width != 800 || first.Angle != "25" {
		t.Errorf("defaults not kept: width %d angle %q", first.Canvas.Width, first.Angle)
	}

	second, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if second.Angle != "180/7" || second.Limit.Length != 1000 || second.Canvas.Format != FormatPNG {
		t.Errorf("second document = %+v", second)
	}

	if _, err := dec.Decode(); err != io.EOF {
		t.Errorf("Decode() at end = %v, want io.EOF", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "run.yml")
	if err := os.WriteFile(path, []byte("generations: 5\nscale: \"step * 0.6\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Generations != 5 || cfg.Scale != "step * 0.6" {
		t.Errorf("Load() = %+v", cfg)
	}

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(empty)
	if err != nil || cfg.Generations != Default().Generations {
		t.Errorf("Load(empty) = %+v, %v", cfg, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"step", func(c *Config) { c.Step = 0 }},
		{"branch scale", func(c *Config) { c.BranchScale = -1 }},
		{"limit", func(c *Config) { c.Limit.Length = -1 }},
		{"format", func(c *Config) { c.Canvas.Format = "gif" }},
		{"size", func(c *Config) { c.Canvas.Width = 0 }},
		{"line width", func(c *Config) { c.Canvas.LineWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}
