package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/starlet/engine/core"
)

type WindowConfig struct {
	// Window starting width.
	Width uint32 `toml:"width"`
	// Window starting height.
	Height uint32 `toml:"height"`
	// The title used in windowing.
	Title string `toml:"title"`
	VSync bool   `toml:"vsync"`
}

type Config struct {
	Window WindowConfig `toml:"window"`
	// Root of the asset tree holding shaders/, scenes/, models/ and textures/.
	Assets string `toml:"assets"`
	// Scene loaded at startup; empty loads the empty scene.
	Scene    string `toml:"scene"`
	LogLevel string `toml:"log_level"`
	// Watch the asset tree and recompile shaders when they change.
	HotReload bool `toml:"hot_reload"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Starlet",
			VSync:  true,
		},
		Assets:    "assets",
		Scene:     DefaultSceneName,
		LogLevel:  "info",
		HotReload: true,
	}
}

// LoadConfig reads a TOML config file on top of the defaults. A missing file
// is not an error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogInfo("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config %s line %d column %d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size must be non-zero (got %dx%d)", c.Window.Width, c.Window.Height)
	}
	return nil
}
