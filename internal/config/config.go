// Package config reads the drawing settings of a run. Grammars are never part of it: axiom and rules come from the command line.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Generations is the number of rewrites before drawing
	Generations uint `yaml:"generations"`

	// Step is the step length at generation 0
	Step float64 `yaml:"step"`

	// Scale is applied to the step after each generation, either a factor or an expression
	Scale string `yaml:"scale"`

	// Angle and Heading are expressions in degrees
	Angle   string `yaml:"angle"`
	Heading string `yaml:"heading"`

	BranchScale float64 `yaml:"branch_scale"`

	// Strict turns an unclosed branch into an error
	Strict bool `yaml:"strict"`

	Limit  Limit  `yaml:"limit"`
	Canvas Canvas `yaml:"canvas"`
	Log    Log    `yaml:"log"`
}

type Limit struct {
	Generations uint `yaml:"generations"`
	Length      int  `yaml:"length"`
}

type Canvas struct {
	Format    string  `yaml:"format"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Margin    float64 `yaml:"margin"`
	LineWidth float64 `yaml:"line_width"`
	// Thinning multiplies the line width at each branch depth
	Thinning   float64 `yaml:"thinning"`
	Color      string  `yaml:"color"`
	Background string  `yaml:"background"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Formats understood by the renderers
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatText = "text"
)

func Default() Config {
	return Config{
		Generations: 4,
		Step:        200,
		Scale:       "0.5",
		Angle:       "25",
		Heading:     "90",
		BranchScale: 1,
		Limit: Limit{
			Length: 4_000_000,
		},
		Canvas: Canvas{
			Format:     FormatPNG,
			Width:      800,
			Height:     800,
			Margin:     20,
			LineWidth:  1,
			Thinning:   1,
			Color:      "#000000cc",
			Background: "#ffffff",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

type Decoder struct {
	in          io.Reader
	yamlDecoder *yaml.Decoder
}

func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{
		in:          in,
		yamlDecoder: yaml.NewDecoder(in),
	}
}

// Decode reads the next document over the defaults. It returns io.EOF once the stream is exhausted.
func (dec *Decoder) Decode() (*Config, error) {
	cfg := Default()
	if err := dec.yamlDecoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a single settings file. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	cfg, err := NewDecoder(f).Decode()
	if err == io.EOF {
		def := Default()
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Step <= 0 {
		return errors.Errorf("step must be positive, got %g", cfg.Step)
	}
	if cfg.BranchScale < 0 {
		return errors.Errorf("branch_scale must not be negative, got %g", cfg.BranchScale)
	}
	if cfg.Limit.Length < 0 {
		return errors.Errorf("limit.length must not be negative, got %d", cfg.Limit.Length)
	}
	switch cfg.Canvas.Format {
	case FormatPNG, FormatSVG, FormatText:
	default:
		return errors.Errorf("unknown canvas format %q", cfg.Canvas.Format)
	}
	if cfg.Canvas.Format != FormatText && (cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0) {
		return errors.Errorf("canvas must have a positive size, got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.LineWidth <= 0 {
		return errors.Errorf("canvas.line_width must be positive, got %g", cfg.Canvas.LineWidth)
	}
	return nil
}
