package config

import (
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfig_LoadAndSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/cfg/formbuilder.yaml"

	cfg := Config{
		StoreDir:  "/data/forms",
		BlobKey:   "team_forms",
		LogLevel:  "debug",
		LogFormat: LogFormatJSON,
	}
	require.NoError(t, cfg.Save(fsys, path))

	loaded, err := Load(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/c.yaml", []byte("log_level: warn\n"), 0o644))

	cfg, err := Load(fsys, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, DefaultStoreDir, cfg.StoreDir)
	assert.Equal(t, "formBuilder_forms", cfg.BlobKey)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
}

func TestLoad_InvalidYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/c.yaml", []byte("store_dir: [unterminated\n"), 0o644))

	_, err := Load(fsys, "/c.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: decode")
}

func TestResolve(t *testing.T) {
	t.Run("defaults when default file is missing", func(t *testing.T) {
		cfg, err := Resolve(afero.NewMemMapFs(), "", envFrom(map[string]string{"HOME": "/home/ada"}))
		require.NoError(t, err)
		assert.Equal(t, "/home/ada/.formbuilder", cfg.StoreDir)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	})

	t.Run("reads default file location", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/home/ada/.formbuilder/config.yaml", []byte("log_format: json\n"), 0o644))

		cfg, err := Resolve(fsys, "", envFrom(map[string]string{"HOME": "/home/ada"}))
		require.NoError(t, err)
		assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Resolve(afero.NewMemMapFs(), "/missing.yaml", envFrom(nil))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/c.yaml", []byte("store_dir: /from/file\nlog_level: info\n"), 0o644))

		cfg, err := Resolve(fsys, "/c.yaml", envFrom(map[string]string{
			EnvStoreDir: "~/forms",
			EnvLogLevel: "trace",
			"HOME":      "/home/ada",
		}))
		require.NoError(t, err)
		assert.Equal(t, "/home/ada/forms", cfg.StoreDir)
		assert.Equal(t, "trace", cfg.LogLevel)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Default()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "empty store dir", mutate: func(c *Config) { c.StoreDir = " " }, wantErr: "store_dir is required"},
		{name: "blob key with separator", mutate: func(c *Config) { c.BlobKey = "a/b" }, wantErr: "blob_key"},
		{name: "empty blob key", mutate: func(c *Config) { c.BlobKey = "" }, wantErr: "blob_key"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "unknown log_level"},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "unknown log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/ada", ExpandHome("~", "/home/ada"))
	assert.Equal(t, "/home/ada/x", ExpandHome("~/x", "/home/ada"))
	assert.Equal(t, "~/x", ExpandHome("~/x", ""))
	assert.Equal(t, "/abs", ExpandHome("/abs", "/home/ada"))
}
