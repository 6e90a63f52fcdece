package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TEST_HTTP_PORT"`
	} `yaml:"http"`
	Cache struct {
		TTL     time.Duration `yaml:"ttl"`
		Enabled bool          `yaml:"enabled"`
	} `yaml:"cache"`
	Origins []string `yaml:"origins" env:"TEST_ORIGINS"`
	Limit   int      `yaml:"limit" env:"TEST_LIMIT"`
	Ignored string   `env:"-"`
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	assert.Error(t, LoadConfig(nil))
	assert.Error(t, LoadConfig(testConfig{}))
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\nlimit: 3\norigins: [\"a\"]\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_LIMIT", "7")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("TEST_ORIGINS", "http://a.test, http://b.test,")

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, 7, cfg.Limit)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_HTTP_PORT=7777\n"), 0o600))
	t.Setenv("CONFIG_FILE", "")
	t.Cleanup(func() { _ = os.Unsetenv("TEST_HTTP_PORT") })

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))
	assert.Equal(t, "7777", cfg.HTTP.Port)
}

func TestLoadConfigMissingExplicitDotEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DOTENV_FILE", "does-not-exist.env")

	var cfg testConfig
	assert.Error(t, LoadConfig(&cfg))
}

func TestLoadConfigBadValue(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TEST_LIMIT", "many")

	var cfg testConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_LIMIT")
}
