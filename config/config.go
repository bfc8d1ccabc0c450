package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Widget kinds accepted in the configuration file.
const (
	KindText   = "text"   // static label
	KindSpacer = "spacer" // flexible gap (fixed gap when width is set)
	KindClock  = "clock"  // wall clock, Format is a time layout
	KindCPU    = "cpu"    // CPU utilization percentage
	KindMemory = "memory" // used memory percentage
)

// Config is the root of the bar's YAML configuration.
type Config struct {
	Bar     BarConfig      `yaml:"bar"`
	Font    FontConfig     `yaml:"font"`
	Widgets []WidgetConfig `yaml:"widgets"`
}

// BarConfig sets the bar's geometry and base colors. Colors are hex
// strings ("#RRGGBB" or "#RRGGBBAA", short forms accepted).
type BarConfig struct {
	Width      uint32  `yaml:"width"`
	Height     uint32  `yaml:"height"`
	Background string  `yaml:"background"`
	Foreground string  `yaml:"foreground"`
	Padding    float64 `yaml:"padding"`
}

// FontConfig names the font file and the default text size in pixels.
// An empty path leaves font loading to the caller.
type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// WidgetConfig describes one cell of the bar row.
//
// Format is a fmt verb string for percentage kinds ("cpu %3.0f%%") and
// a time layout for the clock ("15:04"). Interval is the poll period of
// metric kinds; zero means the bridge default. Zero Width means
// automatic: intrinsic for labels, flexible for spacers.
type WidgetConfig struct {
	Kind       string        `yaml:"kind"`
	Text       string        `yaml:"text"`
	Format     string        `yaml:"format"`
	Interval   time.Duration `yaml:"interval"`
	Foreground string        `yaml:"foreground"`
	Background string        `yaml:"background"`
	Width      float64       `yaml:"width"`
	FontSize   float64       `yaml:"font_size"`
}

// Default returns the configuration used when no file is given: a
// full-width bar with a label, a spacer, and the three built-in
// metrics.
func Default() *Config {
	return &Config{
		Bar: BarConfig{
			Width:      1920,
			Height:     28,
			Background: "#1a1b26",
			Foreground: "#c0caf5",
			Padding:    4,
		},
		Font: FontConfig{
			Size: 13,
		},
		Widgets: []WidgetConfig{
			{Kind: KindText, Text: "gogpu"},
			{Kind: KindSpacer},
			{Kind: KindCPU, Format: "cpu %3.0f%%", Interval: 2 * time.Second},
			{Kind: KindMemory, Format: "mem %3.0f%%", Interval: 5 * time.Second},
			{Kind: KindClock, Format: "Mon 02 15:04:05", Interval: time.Second},
		},
	}
}

// Load reads and validates a configuration file. Values not present in
// the file keep their defaults; a widgets list in the file replaces the
// default row entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown fields are rejected so typos surface as errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and names the offending field in
// every error it returns.
func (c *Config) Validate() error {
	if c.Bar.Width == 0 {
		return fmt.Errorf("bar.width must be positive")
	}
	if c.Bar.Height == 0 {
		return fmt.Errorf("bar.height must be positive")
	}
	if c.Bar.Padding < 0 {
		return fmt.Errorf("bar.padding must be >= 0")
	}
	if err := validColor(c.Bar.Background); err != nil {
		return fmt.Errorf("bar.background: %w", err)
	}
	if err := validColor(c.Bar.Foreground); err != nil {
		return fmt.Errorf("bar.foreground: %w", err)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive")
	}
	if len(c.Widgets) == 0 {
		return fmt.Errorf("widgets must not be empty")
	}

	metricKinds := make(map[string]bool)
	for i, w := range c.Widgets {
		switch w.Kind {
		case KindText:
			if w.Text == "" {
				return fmt.Errorf("widgets[%d]: text widget needs text", i)
			}
		case KindSpacer:
		case KindClock, KindCPU, KindMemory:
			// One binding per metric key.
			if metricKinds[w.Kind] {
				return fmt.Errorf("widgets[%d]: duplicate %s widget", i, w.Kind)
			}
			metricKinds[w.Kind] = true
		default:
			return fmt.Errorf("widgets[%d]: unknown kind %q", i, w.Kind)
		}
		if w.Interval < 0 {
			return fmt.Errorf("widgets[%d]: interval must be >= 0", i)
		}
		if w.Width < 0 {
			return fmt.Errorf("widgets[%d]: width must be >= 0", i)
		}
		if w.FontSize < 0 {
			return fmt.Errorf("widgets[%d]: font_size must be >= 0", i)
		}
		if err := validColor(w.Foreground); err != nil {
			return fmt.Errorf("widgets[%d].foreground: %w", i, err)
		}
		if err := validColor(w.Background); err != nil {
			return fmt.Errorf("widgets[%d].background: %w", i, err)
		}
	}
	return nil
}

// validColor accepts the empty string (inherit) and the hex forms the
// color parser understands.
func validColor(s string) error {
	if s == "" {
		return nil
	}
	hex := s
	if hex[0] == '#' {
		hex = hex[1:]
	}
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return fmt.Errorf("invalid color %q", s)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return fmt.Errorf("invalid color %q", s)
		}
	}
	return nil
}
