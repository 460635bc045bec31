package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config.yaml into dir and registers its removal.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() { _ = os.Remove(path) })
	return path
}

func TestInitialize(t *testing.T) {
	t.Cleanup(ResetForTesting)
	require.NoError(t, Initialize())
	if v == nil {
		t.Fatal("viper instance is nil after Initialize()")
	}
	assert.Empty(t, ConfigFileUsed())
}

func TestDefaults(t *testing.T) {
	t.Cleanup(ResetForTesting)
	require.NoError(t, Initialize())

	tests := []struct {
		key      string
		expected interface{}
		getter   func(string) interface{}
	}{
		{KeyFile, filepath.Join("~", ".tk", "tickets.json"), func(k string) interface{} { return GetString(k) }},
		{KeyJSON, false, func(k string) interface{} { return GetBool(k) }},
		{KeyLockTimeout, 5 * time.Second, func(k string) interface{} { return GetDuration(k) }},
		{KeyColor, "auto", func(k string) interface{} { return GetString(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := tt.getter(tt.key); got != tt.expected {
				t.Errorf("GetXXX(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestEnvironmentBinding(t *testing.T) {
	tests := []struct {
		envVar   string
		key      string
		value    string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"TK_JSON", KeyJSON, "true", true, func(k string) interface{} { return GetBool(k) }},
		{"TK_FILE", KeyFile, "/tmp/tickets.json", "/tmp/tickets.json", func(k string) interface{} { return GetString(k) }},
		{"TK_LOCK_TIMEOUT", KeyLockTimeout, "10s", 10 * time.Second, func(k string) interface{} { return GetDuration(k) }},
		{"TK_COLOR", KeyColor, "never", "never", func(k string) interface{} { return GetString(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.envVar, func(t *testing.T) {
			t.Cleanup(ResetForTesting)
			t.Setenv(tt.envVar, tt.value)

			require.NoError(t, Initialize())
			if got := tt.getter(tt.key); got != tt.expected {
				t.Errorf("GetXXX(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestConfigFileSearchOrder(t *testing.T) {
	t.Cleanup(ResetForTesting)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	homePath := writeConfig(t, filepath.Join(home, ".tk"), "file: /home/tickets.json\n")
	require.NoError(t, Initialize())
	assert.Equal(t, homePath, ConfigFileUsed())
	assert.Equal(t, "/home/tickets.json", GetString(KeyFile))

	xdgPath := writeConfig(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "tk"), "file: /xdg/tickets.json\n")
	require.NoError(t, Initialize())
	assert.Equal(t, xdgPath, ConfigFileUsed())
	assert.Equal(t, "/xdg/tickets.json", GetString(KeyFile))

	localPath := writeConfig(t, filepath.Join(cwd, ".tk"), "file: ./local.json\nlock-timeout: 1s\n")
	require.NoError(t, Initialize())
	assert.Equal(t, localPath, ConfigFileUsed())
	assert.Equal(t, "./local.json", GetString(KeyFile))
	assert.Equal(t, time.Second, GetDuration(KeyLockTimeout))
}

func TestEnvOverridesConfigFile(t *testing.T) {
	t.Cleanup(ResetForTesting)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	writeConfig(t, filepath.Join(home, ".tk"), "json: false\n")
	t.Setenv("TK_JSON", "true")

	require.NoError(t, Initialize())
	assert.True(t, GetBool(KeyJSON))
}

func TestExplicitConfigFile(t *testing.T) {
	t.Cleanup(ResetForTesting)
	path := writeConfig(t, t.TempDir(), "color: always\n")
	t.Setenv("TK_CONFIG", path)

	require.NoError(t, Initialize())
	assert.Equal(t, path, ConfigFileUsed())
	assert.Equal(t, "always", GetString(KeyColor))
}

func TestInvalidConfigFile(t *testing.T) {
	t.Cleanup(ResetForTesting)
	path := writeConfig(t, t.TempDir(), "file: [unclosed\n")
	t.Setenv("TK_CONFIG", path)

	assert.Error(t, Initialize())
}

func TestDataFileExpandsHome(t *testing.T) {
	t.Cleanup(ResetForTesting)
	require.NoError(t, Initialize())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := DataFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tk", "tickets.json"), got)

	Set(KeyFile, "/abs/tickets.json")
	got, err = DataFile()
	require.NoError(t, err)
	assert.Equal(t, "/abs/tickets.json", got)
}

func TestGettersBeforeInitialize(t *testing.T) {
	ResetForTesting()
	assert.Equal(t, "", GetString(KeyFile))
	assert.False(t, GetBool(KeyJSON))
	assert.Zero(t, GetDuration(KeyLockTimeout))
	assert.Empty(t, AllSettings())

	_, err := DataFile()
	assert.Error(t, err)
}
