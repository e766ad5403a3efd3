package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Timeout int    `json:"timeout"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.json5")
	writeFile(t, path, `{base_url: "https://example.com", timeout: 30}`)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", config.BaseUrl)
	require.Equal(t, 30, config.Timeout)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "client.json5"), `{base_url: "https://example.com", timeout: 30}`)
	writeFile(t, filepath.Join(dir, "client.local.json5"), `{base_url: "http://localhost:8080"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "client.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.BaseUrl)
	require.Equal(t, 30, config.Timeout)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "client.local.json5"), `{base_url: "http://localhost:8080"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "client.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.BaseUrl)
}

func TestReadConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.json5")
	writeFile(t, path, `{base_url:`)

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
}
