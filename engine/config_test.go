package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "starlet.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starlet.toml")
	src := `
assets = "content"
scene = "Sandbox"

[window]
width = 1920
height = 1080
vsync = false
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1920), cfg.Window.Width)
	assert.Equal(t, uint32(1080), cfg.Window.Height)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "Starlet", cfg.Window.Title, "untouched keys keep their default")
	assert.Equal(t, "content", cfg.Assets)
	assert.Equal(t, "Sandbox", cfg.Scene)
}

func TestLoadConfigRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"unknown key": "colour = \"red\"\n",
		"syntax":      "[window\n",
		"zero width":  "[window]\nwidth = 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "starlet.toml")
			require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}
