package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func loadWithViper(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSaveFlag_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dir", "config.yaml")

	require.NoError(t, SaveFlag(configPath, "sqlite-mirror", true))

	cfg := loadWithViper(t, configPath)
	require.True(t, cfg.Flags["sqlite-mirror"])
}

func TestSaveFlag_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# top comment
registry: models.yaml # where models live
debug: true
flags:
  strict-dates: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o644))

	require.NoError(t, SaveFlag(configPath, "sqlite-mirror", true))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "# top comment")
	require.Contains(t, string(data), "# where models live")

	cfg := loadWithViper(t, configPath)
	require.Equal(t, "models.yaml", cfg.Registry)
	require.True(t, cfg.Debug)
	require.True(t, cfg.Flags["strict-dates"])
	require.True(t, cfg.Flags["sqlite-mirror"])
}

func TestSaveFlag_Overwrites(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveFlag(configPath, "sqlite-mirror", true))
	require.NoError(t, SaveFlag(configPath, "sqlite-mirror", false))

	cfg := loadWithViper(t, configPath)
	require.False(t, cfg.Flags["sqlite-mirror"])
}

func TestSaveFlag_ReplacesNonMappingFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("flags: nope\n"), 0o644))

	require.NoError(t, SaveFlag(configPath, "strict-dates", true))

	cfg := loadWithViper(t, configPath)
	require.Equal(t, map[string]bool{"strict-dates": true}, cfg.Flags)
}

func TestSaveFlag_Errors(t *testing.T) {
	dir := t.TempDir()

	require.Error(t, SaveFlag(filepath.Join(dir, "config.yaml"), "", true))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("registry: [unclosed\n"), 0o644))
	err := SaveFlag(bad, "sqlite-mirror", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")

	list := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0o644))
	err = SaveFlag(list, "sqlite-mirror", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}

func TestSaveRegistryPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveRegistryPath(configPath, "models.yaml"))

	cfg := loadWithViper(t, configPath)
	require.Equal(t, "models.yaml", cfg.Registry)
	require.Equal(t, ".modelctl/models.db", cfg.SQLite.Path, "other keys survive")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "# modelctl configuration")

	require.Error(t, SaveRegistryPath(configPath, ""))
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveFlag(configPath, "sqlite-mirror", true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}
