package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	Timeout  int    `json:"timeout_seconds"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "skyward.json5")

	_, err := ReadConfig[testConfig](name)
	require.True(t, os.IsNotExist(err))

	writeFile(t, name, `{
		// comments are allowed
		service: "wseduexample",
		username: "student",
	}`)
	writeFile(t, filepath.Join(dir, "skyward.local.json5"), `{username: "override"}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{Service: "wseduexample", Username: "override"}, cfg)
}

func TestReadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "skyward.json5")
	defaults := testConfig{Service: "default", Timeout: 60}

	cfg, err := ReadConfigWithDefaults(name, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, name, `{timeout_seconds: 5}`)
	cfg, err = ReadConfigWithDefaults(name, defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{Service: "default", Timeout: 5}, cfg)
}
