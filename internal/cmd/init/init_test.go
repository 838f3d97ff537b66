package init

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/highlight-cli/internal/config"
)

func TestRunInit_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hl", "config.yml")

	var buf bytes.Buffer
	err := runInit(&initOptions{configPath: configPath, defaults: true, interactive: true, stdout: &buf})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "5s", cfg.Timeout)
	assert.Equal(t, config.DefaultOutputFormat, cfg.OutputFormat)
	assert.Equal(t, config.DefaultHighlightColor, cfg.HighlightColor)
	assert.False(t, cfg.CaseSensitive)

	assert.Contains(t, buf.String(), "Configuration saved to "+configPath)
}

func TestRunInit_DefaultsOverwriteWithoutPrompt(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{CaseSensitive: true, HighlightColor: "red"}).Save(configPath))

	err := runInit(&initOptions{configPath: configPath, defaults: true, stdout: new(bytes.Buffer)})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.False(t, cfg.CaseSensitive)
	assert.Equal(t, config.DefaultHighlightColor, cfg.HighlightColor)
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"5s", false},
		{"250ms", false},
		{"", true},
		{"soon", true},
		{"0s", true},
		{"-1s", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateTimeout(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigForm(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	assert.NotNil(t, configForm(cfg))
}
