package sprig

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the engine's tunables. The zero value is usable; New fills
// unset fields with defaults.
type Config struct {
	// VirtualResolution is the virtual size of the screen's shorter
	// dimension.
	VirtualResolution float64 `toml:"virtual_resolution"`

	// DragStartThreshold is the pointer travel, in physical pixels, that
	// turns a press into a drag.
	DragStartThreshold int `toml:"drag_start_threshold"`

	// Scroll speeds per input source. Drag is a multiplier on pointer
	// movement, wheel a multiplier on wheel ticks in virtual units, and
	// gamepad a per-frame speed in virtual units at full deflection.
	ScrollDragSpeed    float64 `toml:"scroll_drag_speed"`
	ScrollWheelSpeed   float64 `toml:"scroll_wheel_speed"`
	ScrollGamepadSpeed float64 `toml:"scroll_gamepad_speed"`

	// CaretBlinkRate is the edit caret's on (and off) time in seconds.
	CaretBlinkRate float64 `toml:"caret_blink_rate"`

	// Debug enables stderr diagnostics.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		VirtualResolution:  DefaultVirtualResolution,
		DragStartThreshold: defaultDragStartThreshold,
		ScrollDragSpeed:    2,
		ScrollWheelSpeed:   16,
		ScrollGamepadSpeed: 0.1,
		CaretBlinkRate:     0.5,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.VirtualResolution == 0 {
		c.VirtualResolution = def.VirtualResolution
	}
	if c.DragStartThreshold == 0 {
		c.DragStartThreshold = def.DragStartThreshold
	}
	if c.ScrollDragSpeed == 0 {
		c.ScrollDragSpeed = def.ScrollDragSpeed
	}
	if c.ScrollWheelSpeed == 0 {
		c.ScrollWheelSpeed = def.ScrollWheelSpeed
	}
	if c.ScrollGamepadSpeed == 0 {
		c.ScrollGamepadSpeed = def.ScrollGamepadSpeed
	}
	if c.CaretBlinkRate == 0 {
		c.CaretBlinkRate = def.CaretBlinkRate
	}
	return c
}

// LoadConfig reads a TOML config file. Fields missing from the file keep
// their defaults. On error the defaults are returned alongside it, so
// callers can proceed with them if they choose.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}
