package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/format"
)

// TestDefault verifies the defaults are valid.
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, angle.Degrees, cfg.Angle())
	require.Equal(t, format.CompressionZstd, cfg.Compression())
	require.Equal(t, slog.LevelWarn, cfg.Level())
	require.Equal(t, 100, cfg.History.Capacity)
	require.NotEmpty(t, cfg.DataDir)
}

// TestLoad_MissingFile verifies a missing file yields the defaults.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoad_Overrides verifies file values override defaults field by field.
func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abacus.yaml")
	content := `
angle_mode: radians
log_level: debug
history:
  capacity: 25
storage:
  in_memory: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, angle.Radians, cfg.Angle())
	require.Equal(t, slog.LevelDebug, cfg.Level())
	require.Equal(t, 25, cfg.History.Capacity)
	require.Equal(t, "zstd", cfg.History.Compression)
	require.True(t, cfg.Storage.InMemory)
	require.False(t, cfg.Storage.SyncWrites)
}

// TestLoad_Invalid verifies validation failures are reported.
func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"angle mode":  "angle_mode: turns\n",
		"log level":   "log_level: trace\n",
		"capacity":    "history:\n  capacity: 0\n",
		"compression": "history:\n  compression: brotli\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "abacus.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := Load(path)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
		})
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history: [1, 2"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

// TestValidate_DataDir verifies data_dir is only required for persistent storage.
func TestValidate_DataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = ""
	require.ErrorIs(t, cfg.Validate(), ErrDataDirRequired)

	cfg.Storage.InMemory = true
	require.NoError(t, cfg.Validate())
}

// TestSave verifies a saved config loads back unchanged.
func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "abacus.yaml")
	cfg := Default()
	cfg.AngleMode = "grad"
	cfg.History.Compression = "lz4"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
	require.Equal(t, angle.Gradians, loaded.Angle())
	require.Equal(t, format.CompressionLZ4, loaded.Compression())

	cfg.LogLevel = "loud"
	require.Error(t, Save(path, cfg))
}
