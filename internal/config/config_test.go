package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "нет-файла.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.Equal(t, 6, cfg.ViewDistance)
	assert.Equal(t, "world.dat", cfg.SavePath)
}

func TestLoadPartialOverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("seed: 999\nview_distance: 3\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(999), cfg.Seed)
	assert.Equal(t, 3, cfg.ViewDistance)
	// Не указанные поля остаются значениями по умолчанию
	assert.Equal(t, 4.3, cfg.WalkSpeed)
	assert.Equal(t, 300, cfg.AutosaveSec)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0644))
	t.Setenv("GAME_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "битый.yml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [не число"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	cfg.Seed = 777
	cfg.ShowDebug = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
