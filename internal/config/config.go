// Package config handles formbuilder CLI configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultStoreDir is where form collections live unless overridden.
	DefaultStoreDir = "~/.formbuilder"
	// DefaultLogLevel is the hclog level used when none is configured.
	DefaultLogLevel = "info"
	// ConfigFileName is the file looked up inside the store directory.
	ConfigFileName = "config.yaml"

	LogFormatText = "text"
	LogFormatJSON = "json"

	EnvStoreDir = "FORMBUILDER_STORE_DIR"
	EnvLogLevel = "FORMBUILDER_LOG_LEVEL"
)

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the formbuilder configuration file.
type Config struct {
	StoreDir  string `yaml:"store_dir"`
	BlobKey   string `yaml:"blob_key"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		StoreDir:  DefaultStoreDir,
		BlobKey:   store.DefaultKey,
		LogLevel:  DefaultLogLevel,
		LogFormat: LogFormatText,
	}
}

// Load reads a Config from path. Keys missing from the file keep their
// default values.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve builds the effective configuration. An explicit path must exist;
// with an empty path the default location is tried and silently skipped when
// absent. Environment overrides are applied last and the store directory is
// expanded against HOME.
func Resolve(fsys afero.Fs, path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	home := getenv("HOME")

	explicit := path != ""
	if !explicit {
		path = filepath.Join(ExpandHome(DefaultStoreDir, home), ConfigFileName)
	}

	cfg, err := Load(fsys, ExpandHome(path, home))
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		def := Default()
		cfg = &def
	default:
		return nil, err
	}

	cfg.ApplyEnv(getenv)
	cfg.StoreDir = ExpandHome(cfg.StoreDir, home)
	return cfg, nil
}

// ApplyEnv overrides fields from FORMBUILDER_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvStoreDir)); v != "" {
		c.StoreDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Save writes the Config to path, creating parent directories.
func (c *Config) Save(fsys afero.Fs, path string) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StoreDir) == "" {
		return fmt.Errorf("%w: store_dir is required", ErrInvalidConfig)
	}
	if c.BlobKey == "" || strings.ContainsAny(c.BlobKey, `/\`) || c.BlobKey == "." || c.BlobKey == ".." {
		return fmt.Errorf("%w: blob_key %q is not a valid file name", ErrInvalidConfig, c.BlobKey)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ExpandHome replaces a leading "~" with home.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
