// Package config provides YAML-based configuration loading for the
// receiver.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	// BindAddr is the local address every stream binds. Default
	// "0.0.0.0" listens on all interfaces.
	BindAddr string `mapstructure:"bind_addr"`

	// Streams lists the camera streams to receive, one UDP port each.
	Streams []StreamConfig `mapstructure:"streams"`

	// Network holds socket tuning shared by all streams.
	Network NetworkConfig `mapstructure:"network"`

	// Display holds presentation settings.
	Display DisplayConfig `mapstructure:"display"`

	// Log holds logging settings.
	Log LogConfig `mapstructure:"log"`
}

// StreamConfig identifies one camera stream.
type StreamConfig struct {
	// Name labels the stream in logs and output files.
	Name string `mapstructure:"name"`
	// Port is the stream's UDP port.
	Port int `mapstructure:"port"`
}

// NetworkConfig tunes the per-stream sockets.
type NetworkConfig struct {
	// ReadBufferSize is the socket receive buffer requested from the OS,
	// in bytes. Large enough to absorb a bursty multi-datagram frame.
	ReadBufferSize int `mapstructure:"read_buffer_size"`

	// ReadTimeout bounds each blocking socket read, which is also how
	// often an idle listener re-checks the shutdown signal.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// TakeTimeout bounds the decode worker's wait for a raw frame.
	TakeTimeout time.Duration `mapstructure:"take_timeout"`
}

// DisplayConfig tunes the presentation cadence.
type DisplayConfig struct {
	// FrameRate is the display update rate in frames per second.
	FrameRate int `mapstructure:"frame_rate"`

	// JPEGQuality is the re-encode quality used by the file renderer.
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format: text or json.
	Format string `mapstructure:"format"`
}

// Default returns a Config matching the reference two-camera rig.
func Default() *Config {
	return &Config{
		BindAddr: "0.0.0.0",
		Streams: []StreamConfig{
			{Name: "top", Port: 50000},
			{Name: "bottom", Port: 50001},
		},
		Network: NetworkConfig{
			ReadBufferSize: 4 * 1024 * 1024,
			ReadTimeout:    time.Second,
			TakeTimeout:    500 * time.Millisecond,
		},
		Display: DisplayConfig{
			FrameRate:   30,
			JPEGQuality: 80,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// an error; missing keys keep their default values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("bind_addr", cfg.BindAddr)
	v.SetDefault("network.read_buffer_size", cfg.Network.ReadBufferSize)
	v.SetDefault("network.read_timeout", cfg.Network.ReadTimeout)
	v.SetDefault("network.take_timeout", cfg.Network.TakeTimeout)
	v.SetDefault("display.frame_rate", cfg.Display.FrameRate)
	v.SetDefault("display.jpeg_quality", cfg.Display.JPEGQuality)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// A file that names no streams keeps the default pair.
	if !v.IsSet("streams") {
		cfg.Streams = Default().Streams
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the receiver cannot run
// with.
func (c *Config) Validate() error {
	if len(c.Streams) == 0 {
		return fmt.Errorf("no streams configured")
	}

	names := make(map[string]bool, len(c.Streams))
	ports := make(map[int]bool, len(c.Streams))
	for _, s := range c.Streams {
		if s.Name == "" {
			return fmt.Errorf("stream with port %d has no name", s.Port)
		}
		if s.Port < 0 || s.Port > 65535 {
			return fmt.Errorf("stream %q: port %d out of range", s.Name, s.Port)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate stream name %q", s.Name)
		}
		if s.Port != 0 && ports[s.Port] {
			return fmt.Errorf("duplicate stream port %d", s.Port)
		}
		names[s.Name] = true
		ports[s.Port] = true
	}

	if c.Display.FrameRate <= 0 {
		return fmt.Errorf("display frame_rate must be positive, got %d", c.Display.FrameRate)
	}
	if c.Network.ReadTimeout <= 0 {
		return fmt.Errorf("network read_timeout must be positive, got %s", c.Network.ReadTimeout)
	}
	return nil
}
