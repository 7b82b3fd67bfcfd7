package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8, cfg.Reel.FPS)
	assert.Equal(t, 2.0, cfg.Reel.SegmentSec)
	assert.Equal(t, 1280, cfg.Reel.Width)
	assert.Equal(t, 720, cfg.Reel.Height)
	assert.Equal(t, "Arial", cfg.Text.Font)
	assert.Equal(t, 50, cfg.Text.FontSize)
	assert.Equal(t, "white", cfg.Text.FontColor)
	assert.Equal(t, "black", cfg.Text.BoxColor)
	assert.Equal(t, "libx264", cfg.FFmpeg.VideoCodec)
	assert.Equal(t, "aac", cfg.FFmpeg.AudioCodec)
	assert.Equal(t, 23, cfg.FFmpeg.CRF)
	assert.Equal(t, 1, cfg.Concurrency)

	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effectreel.yaml")
	data := `
reel:
  fps: 24
ffmpeg:
  preset: fast
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Reel.FPS)
	assert.Equal(t, "fast", cfg.FFmpeg.Preset)
	// Unset fields keep the compiled-in defaults.
	assert.Equal(t, 1280, cfg.Reel.Width)
	assert.Equal(t, "aac", cfg.FFmpeg.AudioCodec)
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reel: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reel:\n  fps: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effectreel.yaml")

	cfg := Default()
	cfg.Reel.FPS = 12
	cfg.Reel.SegmentSec = 3.5
	cfg.Text.Font = "Helvetica"
	cfg.Concurrency = 4
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Reel.FPS = 0 }},
		{"negative segment duration", func(c *Config) { c.Reel.SegmentSec = -2 }},
		{"zero width", func(c *Config) { c.Reel.Width = 0 }},
		{"zero height", func(c *Config) { c.Reel.Height = 0 }},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigContext(t *testing.T) {
	cfg := Default()
	cfg.Reel.FPS = 30

	ctx := WithConfig(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))

	// A bare context falls back to defaults.
	assert.Equal(t, Default(), FromContext(context.Background()))
}
