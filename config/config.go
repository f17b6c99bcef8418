// The config package loads application settings from a TOML file, filling
// in defaults for anything not set.
package config

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
	// Directory for the rotated log file. Empty selects the user config dir
	Dir string `toml:"dir"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "nmage2d",
			Width:     1280,
			Height:    720,
			VSync:     true,
			Resizable: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error, the
// defaults are returned as-is
func Load(path string) (Config, error) {

	cfg := Default()

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Default(), err
	}

	return cfg, nil
}
