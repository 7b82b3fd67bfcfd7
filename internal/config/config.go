package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration.
type Config struct {
	// Core settings
	TempDir     string `yaml:"temp_dir"`
	Concurrency int    `yaml:"concurrency"`

	// Reel settings
	Reel ReelConfig `yaml:"reel"`

	// Text overlay settings
	Text TextConfig `yaml:"text"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
}

// ReelConfig controls segment geometry and timing.
type ReelConfig struct {
	FPS        int     `yaml:"fps"`
	SegmentSec float64 `yaml:"segment_sec"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
}

// TextConfig styles the per-segment label overlay.
type TextConfig struct {
	Font      string `yaml:"font"`
	FontSize  int    `yaml:"font_size"`
	FontColor string `yaml:"font_color"`
	BoxColor  string `yaml:"box_color"`
}

// FFmpegConfig holds encoder settings passed through to ffmpeg verbatim.
type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
	Preset     string `yaml:"preset"`
	CRF        int    `yaml:"crf"`
}

// Load reads configuration from file or returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Save writes configuration to file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks settings the pipeline depends on.
func (c *Config) Validate() error {
	if c.Reel.FPS <= 0 {
		return fmt.Errorf("reel.fps must be positive, got %d", c.Reel.FPS)
	}
	if c.Reel.SegmentSec <= 0 {
		return fmt.Errorf("reel.segment_sec must be positive, got %v", c.Reel.SegmentSec)
	}
	if c.Reel.Width <= 0 || c.Reel.Height <= 0 {
		return fmt.Errorf("reel dimensions must be positive, got %dx%d", c.Reel.Width, c.Reel.Height)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative, got %d", c.Concurrency)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		TempDir:     "",
		Concurrency: 1,
		Reel: ReelConfig{
			FPS:        8,
			SegmentSec: 2,
			Width:      1280,
			Height:     720,
		},
		Text: TextConfig{
			Font:      "Arial",
			FontSize:  50,
			FontColor: "white",
			BoxColor:  "black",
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			Threads:    4,
			VideoCodec: "libx264",
			AudioCodec: "aac",
			Preset:     "medium",
			CRF:        23,
		},
	}
}

// Default returns the compiled-in defaults.
func Default() *Config {
	return defaultConfig()
}

func findConfigFile() string {
	candidates := []string{
		"./effectreel.yaml",
		"./effectreel.yml",
		filepath.Join(os.Getenv("HOME"), ".effectreel", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
