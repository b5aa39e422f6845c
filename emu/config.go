package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"i2spi/emu/log"
	"i2spi/hw"
)

type Config struct {
	Bridge BridgeConfig `toml:"bridge"`
	Sim    SimConfig    `toml:"sim"`
}

type BridgeConfig struct {
	SlaveAddr  uint8 `toml:"slave_addr"`
	SPIDivisor int   `toml:"spi_divisor"`
}

type SimConfig struct {
	// BitHalf is the I2C bit half-period driven by the simulated master,
	// in system ticks.
	BitHalf int `toml:"bit_half"`

	// SettleTicks is how long the clock keeps running after STOP, so the
	// SPI transfer can complete.
	SettleTicks int `toml:"settle_ticks"`
}

func DefaultConfig() Config {
	return Config{
		Bridge: BridgeConfig{
			SlaveAddr:  0x28,
			SPIDivisor: 10,
		},
		Sim: SimConfig{
			BitHalf:     20,
			SettleTicks: 500,
		},
	}
}

// Hardware returns the build-time constants for a bridge instance.
func (c Config) Hardware() hw.Config {
	return hw.Config{
		SlaveAddr:  c.Bridge.SlaveAddr,
		SPIDivisor: c.Bridge.SPIDivisor,
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("i2spi")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the i2spi config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the i2spi config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0o644)
}
