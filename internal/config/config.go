package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"noise-contours/internal/field"
	"noise-contours/internal/render"
)

// EnvConfigPath names the environment variable consulted when no config path is given.
const EnvConfigPath = "NOISE_CONTOURS_CONFIG"

// Config is the root of the YAML configuration file.
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Noise   NoiseConfig   `yaml:"noise"`
	Contour ContourConfig `yaml:"contour"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
}

type FieldConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Seed       int64 `yaml:"seed"` // 0 picks a time-based seed
	Dimensions int   `yaml:"dimensions"`
}

type NoiseConfig struct {
	Octaves       int     `yaml:"octaves"`
	Persistence   float64 `yaml:"persistence"`
	Interpolation string  `yaml:"interpolation"`
}

type ContourConfig struct {
	Threshold float64 `yaml:"threshold"`
	Enabled   bool    `yaml:"enabled"`
	Color     [3]int  `yaml:"color"`
}

type RenderConfig struct {
	CellSize     int    `yaml:"cell_size"`     // pixels per sample in image output
	TerminalCell int    `yaml:"terminal_cell"` // pixels per sample in the SSH viewer
	Palette      string `yaml:"palette"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKey     string `yaml:"host_key"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the settings used when no file is supplied.
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Width:      60,
			Height:     50,
			Dimensions: 2,
		},
		Noise: NoiseConfig{
			Octaves:       field.DefaultOctaves2D,
			Persistence:   field.DefaultPersistence,
			Interpolation: field.Smoothed.String(),
		},
		Contour: ContourConfig{
			Threshold: 0.4,
			Enabled:   true,
			Color:     [3]int{255, 64, 64},
		},
		Render: RenderConfig{
			CellSize:     10,
			TerminalCell: 2,
			Palette:      "grayscale",
		},
		Server: ServerConfig{
			Addr:    ":2222",
			HostKey: "host_key",
		},
	}
}

// Load reads a YAML file over the defaults.
// If path == "", the NOISE_CONTOURS_CONFIG variable is tried; with neither set
// the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Octaves returns the fractal settings.
func (c *Config) Octaves() field.Octaves {
	return field.Octaves{Count: c.Noise.Octaves, Persistence: c.Noise.Persistence}
}

// Interpolation parses the configured mode.
func (c *Config) Interpolation() (field.Interpolation, error) {
	return field.ParseInterpolation(c.Noise.Interpolation)
}

// ContourPixel returns the contour line color.
func (c *Config) ContourPixel() render.Pixel {
	return render.P(uint8(c.Contour.Color[0]), uint8(c.Contour.Color[1]), uint8(c.Contour.Color[2]))
}

// Validate rejects settings the generator cannot run with. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.Width < 1 {
		errs = append(errs, &field.ConfigError{Param: "field.width", Value: c.Field.Width, Reason: "must be at least 1"})
	}
	if c.Field.Height < 1 {
		errs = append(errs, &field.ConfigError{Param: "field.height", Value: c.Field.Height, Reason: "must be at least 1"})
	}
	if c.Field.Dimensions != 1 && c.Field.Dimensions != 2 {
		errs = append(errs, &field.ConfigError{Param: "field.dimensions", Value: c.Field.Dimensions, Reason: "must be 1 or 2"})
	}
	if err := c.Octaves().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Interpolation(); err != nil {
		errs = append(errs, err)
	}
	if !(c.Contour.Threshold >= 0 && c.Contour.Threshold <= 1) {
		errs = append(errs, &field.ConfigError{Param: "contour.threshold", Value: c.Contour.Threshold, Reason: "must lie in [0, 1]"})
	}
	for i, v := range c.Contour.Color {
		if v < 0 || v > 255 {
			errs = append(errs, &field.ConfigError{Param: fmt.Sprintf("contour.color[%d]", i), Value: v, Reason: "must be in 0..255"})
		}
	}
	if c.Render.CellSize < 1 {
		errs = append(errs, &field.ConfigError{Param: "render.cell_size", Value: c.Render.CellSize, Reason: "must be at least 1"})
	}
	if c.Render.TerminalCell < 1 {
		errs = append(errs, &field.ConfigError{Param: "render.terminal_cell", Value: c.Render.TerminalCell, Reason: "must be at least 1"})
	}
	if _, err := render.PaletteByName(c.Render.Palette); err != nil {
		errs = append(errs, &field.ConfigError{Param: "render.palette", Value: c.Render.Palette, Reason: err.Error()})
	}
	return errors.Join(errs...)
}

// ListenAddr returns the SSH address with priority PORT -> config -> default.
func (s *ServerConfig) ListenAddr() string {
	return addrWithEnvFallback(s.Addr, "PORT", ":2222")
}

// MetricsListenAddr returns the metrics address with priority METRICS_PORT ->
// config -> disabled ("").
func (s *ServerConfig) MetricsListenAddr() string {
	return addrWithEnvFallback(s.MetricsAddr, "METRICS_PORT", "")
}

func addrWithEnvFallback(configAddr, envVar, defaultAddr string) string {
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return ":" + envVal
		}
	}
	if configAddr != "" {
		return configAddr
	}
	return defaultAddr
}
