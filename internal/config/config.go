// Package config loads the abacus command configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/format"
	"github.com/arloliu/abacus/history"
)

const (
	dirName  = ".abacus"
	fileName = "abacus.yaml"
)

// Config is the command configuration.
type Config struct {
	DataDir   string        `yaml:"data_dir"`
	AngleMode string        `yaml:"angle_mode" validate:"anglemode"`
	LogLevel  string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	History   HistoryConfig `yaml:"history"`
	Storage   StorageConfig `yaml:"storage"`
}

// HistoryConfig configures the calculation history.
type HistoryConfig struct {
	Capacity    int    `yaml:"capacity" validate:"gte=1,lte=100000"`
	Compression string `yaml:"compression" validate:"compression"`
}

// StorageConfig configures the key-value store.
type StorageConfig struct {
	InMemory   bool `yaml:"in_memory"`
	SyncWrites bool `yaml:"sync_writes"`
}

// ErrDataDirRequired is returned when persistent storage has no data directory.
var ErrDataDirRequired = errors.New("data_dir is required unless storage.in_memory is set")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("anglemode", func(fl validator.FieldLevel) bool {
		_, err := angle.Parse(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("compression", func(fl validator.FieldLevel) bool {
		_, err := format.ParseCompression(fl.Field().String())
		return err == nil
	})
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:   filepath.Join(baseDir(), "data"),
		AngleMode: angle.Degrees.String(),
		LogLevel:  "warn",
		History: HistoryConfig{
			Capacity:    history.DefaultCapacity,
			Compression: "zstd",
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(baseDir(), fileName)
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}

	return filepath.Join(home, dirName)
}

// Load reads the configuration at path over the defaults. A missing file yields
// the defaults; an empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if !c.Storage.InMemory && strings.TrimSpace(c.DataDir) == "" {
		return ErrDataDirRequired
	}

	return nil
}

// Angle returns the parsed angle mode, Degrees when unset or invalid.
func (c *Config) Angle() angle.Mode {
	m, err := angle.Parse(c.AngleMode)
	if err != nil {
		return angle.Degrees
	}

	return m
}

// Compression returns the parsed history compression.
func (c *Config) Compression() format.CompressionType {
	t, err := format.ParseCompression(c.History.Compression)
	if err != nil {
		return format.CompressionNone
	}

	return t
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}

	return level
}
