package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
bar:
  height: 32
  background: "#000000"
widgets:
  - kind: text
    text: hello
  - kind: clock
    format: "15:04"
    interval: 1s
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Bar.Height != 32 {
		t.Errorf("Bar.Height = %d, want 32", cfg.Bar.Height)
	}
	// Width was not set in the file and keeps its default.
	if cfg.Bar.Width != Default().Bar.Width {
		t.Errorf("Bar.Width = %d, want default %d", cfg.Bar.Width, Default().Bar.Width)
	}
	if len(cfg.Widgets) != 2 {
		t.Fatalf("len(Widgets) = %d, want 2", len(cfg.Widgets))
	}
	if cfg.Widgets[1].Kind != KindClock || cfg.Widgets[1].Interval != time.Second {
		t.Errorf("Widgets[1] = %+v, want clock at 1s", cfg.Widgets[1])
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(cfg.Widgets) != len(Default().Widgets) {
		t.Errorf("len(Widgets) = %d, want %d", len(cfg.Widgets), len(Default().Widgets))
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("bar:\n  heigth: 32\n"))
	if err == nil {
		t.Fatal("Parse() with misspelled field succeeded, want error")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Bar.Width = 0 }, "bar.width"},
		{"zero height", func(c *Config) { c.Bar.Height = 0 }, "bar.height"},
		{"negative padding", func(c *Config) { c.Bar.Padding = -1 }, "bar.padding"},
		{"bad background", func(c *Config) { c.Bar.Background = "#12345" }, "bar.background"},
		{"bad foreground", func(c *Config) { c.Bar.Foreground = "red" }, "bar.foreground"},
		{"zero font size", func(c *Config) { c.Font.Size = 0 }, "font.size"},
		{"no widgets", func(c *Config) { c.Widgets = nil }, "widgets"},
		{"unknown kind", func(c *Config) { c.Widgets[0].Kind = "battery" }, "unknown kind"},
		{"empty text", func(c *Config) { c.Widgets[0].Text = "" }, "needs text"},
		{"negative interval", func(c *Config) { c.Widgets[2].Interval = -time.Second }, "interval"},
		{"negative width", func(c *Config) { c.Widgets[0].Width = -5 }, "width"},
		{"bad widget color", func(c *Config) { c.Widgets[0].Foreground = "#zzz" }, "widgets[0].foreground"},
		{"duplicate metric", func(c *Config) { c.Widgets[3] = c.Widgets[2] }, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"#fff", true},
		{"#ffff", true},
		{"#1a2b3c", true},
		{"#1a2b3cff", true},
		{"1a2b3c", true},
		{"#12345", false},
		{"#gggggg", false},
		{"blue", false},
	}
	for _, tt := range tests {
		err := validColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("validColor(%q) = %v, want ok=%v", tt.in, err, tt.ok)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bar.yaml")
	if err := os.WriteFile(path, []byte("bar:\n  height: 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bar.Height != 24 {
		t.Errorf("Bar.Height = %d, want 24", cfg.Bar.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
}
