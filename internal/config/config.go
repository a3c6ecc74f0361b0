// Package config loads the service configuration from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxFileSize caps the config file size.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is the root service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `json:"addr"`

	// DataDir holds the SQLite database. Empty means ~/.mudra.
	DataDir string `json:"data_dir"`

	// StaticDir is served at / when set.
	StaticDir string `json:"static_dir"`

	// HistorySize is the smoothing window length per session.
	HistorySize int `json:"history_size"`

	// SessionIdleTimeout is how long a session may go without frames before
	// it is pruned, as a duration string like "10m".
	SessionIdleTimeout string `json:"session_idle_timeout"`

	// RecordDetections stores every frame result in the database.
	RecordDetections bool `json:"record_detections"`

	Live LiveConfig `json:"live"`
}

// LiveConfig configures the local camera pipeline.
type LiveConfig struct {
	Enabled  bool `json:"enabled"`
	CameraID int  `json:"camera_id"`
	FPS      int  `json:"fps"`

	// IdleFPS is the capture rate while the scene is still. Zero keeps the
	// camera at FPS all the time.
	IdleFPS int `json:"idle_fps"`
	// MotionThreshold is the percentage of changed pixels that counts as
	// motion.
	MotionThreshold float64 `json:"motion_threshold"`

	DetectorScript string  `json:"detector_script"`
	PythonPath     string  `json:"python_path"`
	MaxHands       int     `json:"max_hands"`
	MinConfidence  float64 `json:"min_confidence"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:               ":8080",
		HistorySize:        10,
		SessionIdleTimeout: "10m",
		Live: LiveConfig{
			FPS:             15,
			IdleFPS:         5,
			MotionThreshold: 1.0,
			MaxHands:        2,
			MinConfidence:   0.3,
		},
	}
}

// Load reads a JSON config file. Fields omitted from the file keep their
// default values, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be positive, got %d", c.HistorySize)
	}
	if c.SessionIdleTimeout != "" {
		d, err := time.ParseDuration(c.SessionIdleTimeout)
		if err != nil {
			return fmt.Errorf("invalid session_idle_timeout '%s': %w", c.SessionIdleTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("session_idle_timeout must not be negative, got %s", d)
		}
	}

	if c.Live.Enabled && c.Live.FPS < 1 {
		return fmt.Errorf("live.fps must be positive, got %d", c.Live.FPS)
	}
	if c.Live.IdleFPS < 0 || (c.Live.Enabled && c.Live.IdleFPS > c.Live.FPS) {
		return fmt.Errorf("live.idle_fps must be between 0 and live.fps, got %d", c.Live.IdleFPS)
	}
	if c.Live.MotionThreshold < 0 || c.Live.MotionThreshold > 100 {
		return fmt.Errorf("live.motion_threshold must be a percentage, got %f", c.Live.MotionThreshold)
	}
	if c.Live.MaxHands < 0 {
		return fmt.Errorf("live.max_hands must be non-negative, got %d", c.Live.MaxHands)
	}
	if c.Live.MinConfidence < 0 || c.Live.MinConfidence > 1 {
		return fmt.Errorf("live.min_confidence must be between 0 and 1, got %f", c.Live.MinConfidence)
	}

	return nil
}

// IdleTimeout returns SessionIdleTimeout as a duration. Zero disables
// pruning.
func (c *Config) IdleTimeout() time.Duration {
	if c.SessionIdleTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SessionIdleTimeout)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// ResolveDataDir returns DataDir, falling back to ~/.mudra.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".mudra"), nil
}
