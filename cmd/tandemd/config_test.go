package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	conf, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8574", conf.ListenAddr)
	assert.Equal(t, filepath.Join(home, "tandem.db"), conf.DBPath)
	assert.Equal(t, "tandem-local", conf.ChainID)
	assert.False(t, conf.Debug)
}

func TestLoadConfigFromFile(t *testing.T) {
	home := t.TempDir()
	raw := []byte(`
listen_addr = "0.0.0.0:9000"
chain_id = "tandem-testnet"
debug = true
`)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), raw, 0600))

	conf, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", conf.ListenAddr)
	assert.Equal(t, "tandem-testnet", conf.ChainID)
	assert.True(t, conf.Debug)
	// Values absent from the file keep their defaults.
	assert.Equal(t, filepath.Join(home, "tandem.db"), conf.DBPath)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	conf := DefaultConfig(home)
	conf.ChainID = "tandem-rt"
	require.NoError(t, WriteConfig(home, conf))

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, conf, loaded)
}
