// Package config loads framework settings with viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// WindowConfig holds window and game loop settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// AudioConfig holds audio backend settings. Lengths are milliseconds.
type AudioConfig struct {
	Backend             string  `mapstructure:"backend"`
	SampleRate          int     `mapstructure:"sampleRate"`
	Volume              float64 `mapstructure:"volume"`
	TrackVolume         float64 `mapstructure:"trackVolume"`
	SampleVolume        float64 `mapstructure:"sampleVolume"`
	VirtualTrackLength  float64 `mapstructure:"virtualTrackLength"`
	VirtualSampleLength float64 `mapstructure:"virtualSampleLength"`
}

// Config is the full framework configuration.
type Config struct {
	Window     WindowConfig `mapstructure:"window"`
	TPS        int          `mapstructure:"tps"`
	Debug      bool         `mapstructure:"debug"`
	LogLevel   string       `mapstructure:"logLevel"`
	Storyboard string       `mapstructure:"storyboard"`
	Audio      AudioConfig  `mapstructure:"audio"`
}

const (
	BackendVirtual = "virtual"
	BackendEbiten  = "ebiten"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "cadence")
	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 480)
	v.SetDefault("tps", 60)
	v.SetDefault("debug", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("storyboard", "")

	v.SetDefault("audio.backend", BackendVirtual)
	v.SetDefault("audio.sampleRate", 44100)
	v.SetDefault("audio.volume", 1.0)
	v.SetDefault("audio.trackVolume", 1.0)
	v.SetDefault("audio.sampleVolume", 1.0)
	v.SetDefault("audio.virtualTrackLength", 60000.0)
	v.SetDefault("audio.virtualSampleLength", 1000.0)
}

// Default returns the configuration with no file and no environment applied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads the config file at path (YAML, JSON or TOML, by extension) on
// top of the defaults. CADENCE_* environment variables override both, e.g.
// CADENCE_AUDIO_BACKEND=ebiten. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CADENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the framework cannot run with.
func (c Config) Validate() error {
	switch c.Audio.Backend {
	case BackendVirtual, BackendEbiten:
	default:
		return fmt.Errorf("config: unknown audio backend %q", c.Audio.Backend)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: sample rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}
