// Package config loads runtime settings for the Mudra slideshow controller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of a presentation session.
// Values come from MUDRA_* environment variables and fall back to the defaults below.
type Config struct {
	// DeckPath is the .pptx file to present. Empty means "reopen the last deck".
	DeckPath string `env:"DECK"`

	// DataDir holds the session journal database.
	DataDir string `env:"DATA_DIR"`

	// CameraID is the video capture device index.
	CameraID int `env:"CAMERA_ID" envDefault:"0"`

	// DisplayWidth and DisplayHeight size both the camera frames and the rendered slides.
	DisplayWidth  int `env:"DISPLAY_WIDTH" envDefault:"1280"`
	DisplayHeight int `env:"DISPLAY_HEIGHT" envDefault:"720"`

	// GestureThreshold is the y coordinate a navigation gesture must stay above.
	GestureThreshold int `env:"GESTURE_THRESHOLD" envDefault:"300"`

	// CooldownFrames is how many frames are ignored after a navigation or erase action.
	CooldownFrames int `env:"COOLDOWN_FRAMES" envDefault:"30"`

	// CursorMarginY trims the top and bottom of the camera frame before the
	// fingertip is stretched over the full display height.
	CursorMarginY int `env:"CURSOR_MARGIN_Y" envDefault:"150"`

	ThumbnailWidth  int `env:"THUMBNAIL_WIDTH" envDefault:"200"`
	ThumbnailHeight int `env:"THUMBNAIL_HEIGHT" envDefault:"150"`

	MaxHands      int     `env:"MAX_HANDS" envDefault:"1"`
	MinConfidence float64 `env:"MIN_CONFIDENCE" envDefault:"0.8"`

	// RasterizeTimeout bounds the office-suite export of the whole deck.
	RasterizeTimeout time.Duration `env:"RASTERIZE_TIMEOUT" envDefault:"2m"`

	// Tray shows a system tray status menu next to the slide windows.
	Tray bool `env:"TRAY" envDefault:"false"`
}

// Load parses the environment into a Config and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "MUDRA_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".mudra")
	}

	return cfg, nil
}

// Default returns the configuration used when no environment overrides are set.
func Default() Config {
	return Config{
		DisplayWidth:     1280,
		DisplayHeight:    720,
		GestureThreshold: 300,
		CooldownFrames:   30,
		CursorMarginY:    150,
		ThumbnailWidth:   200,
		ThumbnailHeight:  150,
		MaxHands:         1,
		MinConfidence:    0.8,
		RasterizeTimeout: 2 * time.Minute,
	}
}

// DBPath returns the location of the session journal.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "mudra.db")
}

// Validate reports the first setting that cannot drive a session.
func (c Config) Validate() error {
	switch {
	case c.DisplayWidth <= 0 || c.DisplayHeight <= 0:
		return fmt.Errorf("display size %dx%d must be positive", c.DisplayWidth, c.DisplayHeight)
	case c.CameraID < 0:
		return fmt.Errorf("camera id %d must not be negative", c.CameraID)
	case c.CooldownFrames < 0:
		return fmt.Errorf("cooldown frames %d must not be negative", c.CooldownFrames)
	case c.GestureThreshold < 0 || c.GestureThreshold > c.DisplayHeight:
		return fmt.Errorf("gesture threshold %d outside display height %d", c.GestureThreshold, c.DisplayHeight)
	case 2*c.CursorMarginY >= c.DisplayHeight:
		return fmt.Errorf("cursor margin %d leaves no usable height", c.CursorMarginY)
	case c.ThumbnailWidth <= 0 || c.ThumbnailHeight <= 0:
		return errors.New("thumbnail size must be positive")
	case c.ThumbnailWidth > c.DisplayWidth || c.ThumbnailHeight > c.DisplayHeight:
		return errors.New("thumbnail does not fit on the slide")
	case c.MaxHands < 1:
		return fmt.Errorf("max hands %d must be at least 1", c.MaxHands)
	case c.MinConfidence < 0 || c.MinConfidence > 1:
		return fmt.Errorf("min confidence %.2f must be within 0..1", c.MinConfidence)
	case c.RasterizeTimeout <= 0:
		return errors.New("rasterize timeout must be positive")
	}
	return nil
}
