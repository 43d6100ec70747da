// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game   GameConfig   `toml:"game"`
	Audio  AudioConfig  `toml:"audio"`
	Photos PhotosConfig `toml:"photos"`
}

// GameConfig maps play settings.
type GameConfig struct {
	Mode   *string `toml:"mode"`
	Random *bool   `toml:"random"`
	Hint   *bool   `toml:"hint"`
}

// AudioConfig maps spoken feedback settings.
type AudioConfig struct {
	Enabled   *bool   `toml:"enabled"`
	Endpoint  *string `toml:"endpoint"`
	Lang      *string `toml:"lang"`
	Player    *string `toml:"player"`
	CacheSize *int    `toml:"cache-size"`
}

// PhotosConfig maps the local photo directory.
type PhotosConfig struct {
	Dir *string `toml:"dir"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
