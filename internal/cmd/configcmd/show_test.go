package configcmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/highlight-cli/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		CaseSensitive: true,
		Timeout:       "2s",
		OutputFormat:  "plain",
	}
	require.NoError(t, cfg.Save(configPath))
	t.Setenv("HL_COLOR", "cyan")

	var buf bytes.Buffer
	err := runShow(&showOptions{configPath: configPath, noColor: true, stdout: &buf})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Case sensitive:     true  (source: config)")
	assert.Contains(t, output, "Timeout:            2s  (source: config)")
	assert.Contains(t, output, "Output:             plain  (source: config)")
	assert.Contains(t, output, "Color:              cyan  (source: HL_COLOR)")
	assert.Contains(t, output, "Markers:            [ ]  (source: default)")
	assert.NotContains(t, output, "file not found")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	var buf bytes.Buffer
	err := runShow(&showOptions{configPath: configPath, noColor: true, stdout: &buf})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Timeout:            5s  (source: default)")
	assert.Contains(t, output, "Output:             terminal  (source: default)")
	assert.Contains(t, output, "(file not found)")
}

func TestRunShow_JSON(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{HighlightColor: "red"}).Save(configPath))

	var buf bytes.Buffer
	err := runShow(&showOptions{configPath: configPath, output: "json", noColor: true, stdout: &buf})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "red", decoded["HighlightColor"])
	assert.Equal(t, "terminal", decoded["OutputFormat"])
}
