package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/malt", cfg.Paths.Prefix)
	assert.Equal(t, "/opt/malt/Cellar", cfg.Paths.Cellar)
	assert.Equal(t, filepath.Join("/opt/malt", "Library", "Taps"), cfg.Paths.Taps)
	assert.Equal(t, "malt/core", cfg.Taps.Default)
	assert.Contains(t, cfg.Names.ArchiveSuffixes, ".tar.gz")
	assert.Contains(t, cfg.Names.ArchiveSuffixes, ".zip")

	// The embedded cask pattern must stay a valid regular expression.
	re, err := regexp.Compile(cfg.Names.CaskPattern)
	require.NoError(t, err)
	assert.True(t, re.MatchString("caskroom/cask/firefox"))
	assert.False(t, re.MatchString("wget"))
	assert.False(t, re.MatchString("malt/core/wget"))
}

func TestLoadUserConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malt.toml"), []byte(`
[paths]
prefix = "/usr/local"
`), 0644))
	t.Setenv(EnvConfigDir, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/usr/local", cfg.Paths.Prefix)
	assert.Equal(t, "/usr/local/Cellar", cfg.Paths.Cellar)
}

func TestLoadYAMLUserConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malt.yaml"), []byte(`
paths:
  cellar: /srv/cellar
`), 0644))
	t.Setenv(EnvConfigDir, dir)

	cfg, err := Load()
	require.NoError(t, err)

	// Explicit cellar wins over the derived one.
	assert.Equal(t, "/srv/cellar", cfg.Paths.Cellar)
	assert.Equal(t, "/opt/malt", cfg.Paths.Prefix)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malt.toml"), []byte(`
[paths]
prefix = "/usr/local"
`), 0644))
	t.Setenv(EnvConfigDir, dir)
	t.Setenv("MALT_PATHS_PREFIX", "/home/linuxbrew")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/home/linuxbrew", cfg.Paths.Prefix)
	assert.Equal(t, "/home/linuxbrew/Cellar", cfg.Paths.Cellar)
}

func TestTOMLWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malt.toml"), []byte(`
[paths]
prefix = "/from-toml"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malt.yaml"), []byte(`
paths:
  prefix: /from-yaml
`), 0644))
	t.Setenv(EnvConfigDir, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from-toml", cfg.Paths.Prefix)
}
