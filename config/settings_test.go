package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFile(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *settings)
	assert.EqualValues(t, 64<<10, settings.Snaplen)
	assert.False(t, settings.Promiscuous)
	assert.Equal(t, "info", settings.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wyre.yaml")
	content := `
snaplen: 2048
read-timeout: 5s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 2048, settings.Snaplen)
	assert.Equal(t, 5*time.Second, settings.ReadTimeout)
	assert.Equal(t, "debug", settings.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, Defaults().ChannelSize, settings.ChannelSize)
	assert.Equal(t, Defaults().Log.MaxBackups, settings.Log.MaxBackups)
}

func TestLoadClampsSnaplen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wyre.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snaplen: -1\n"), 0644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Snaplen, settings.Snaplen)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
