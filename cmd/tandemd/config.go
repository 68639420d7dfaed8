package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tandemswap/tandem/errors"
)

// Config holds the daemon configuration, read from a TOML file.
type Config struct {
	// ListenAddr is the address the JSON-RPC server binds to.
	ListenAddr string `toml:"listen_addr"`
	// DBPath is the bbolt database file.
	DBPath string `toml:"db_path"`
	// ChainID identifies the instance in contexts and logs.
	ChainID string `toml:"chain_id"`
	// GenesisPath points to the genesis options JSON file. It is read
	// once, when the database is empty.
	GenesisPath string `toml:"genesis_path"`
	// Debug enables verbose logging and verbose RPC errors.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a configuration with all values set relative to
// the given home directory.
func DefaultConfig(home string) Config {
	return Config{
		ListenAddr:  "localhost:8574",
		DBPath:      filepath.Join(home, "tandem.db"),
		ChainID:     "tandem-local",
		GenesisPath: filepath.Join(home, "genesis.json"),
	}
}

// LoadConfig reads the configuration file, filling missing values with
// defaults. A missing file yields pure defaults.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig(home)
	path := filepath.Join(home, "config.toml")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := toml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse %s: %s", path, err)
	}
	return conf, nil
}

// WriteConfig stores the configuration in the home directory.
func WriteConfig(home string, conf Config) error {
	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.Create(filepath.Join(home, "config.toml"))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
