package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := writeFile(t, dir, "c.yaml", "env: local\napi_url: http://api.test:8080\nstore_path: /tmp/fit\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "http://api.test:8080", cfg.APIURL)
	require.Equal(t, "/tmp/fit", cfg.StorePath)
}

func TestLoad_EnvOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := writeFile(t, dir, "c.yaml", "api_url: http://from-yaml\n")
	t.Setenv("FITNESS_API_URL", "http://from-env")

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "http://from-env", cfg.APIURL)
}

func TestLoad_FitnessConfigEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := writeFile(t, dir, "other.yaml", "api_url: http://other\n")
	t.Setenv("FITNESS_CONFIG", p)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://other", cfg.APIURL)
}

func TestLoad_DefaultFileInWorkdir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, DefaultFile, "api_url: http://local-file\n")
	t.Setenv("FITNESS_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://local-file", cfg.APIURL)
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("FITNESS_CONFIG", "")
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "http://localhost:8000", cfg.APIURL)
	base, err := os.UserConfigDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "fitness", "session"), cfg.StorePath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("/definitely/not/here.yaml")
	require.Error(t, err)
}
