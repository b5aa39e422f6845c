package hw

// ui_in bit assignments (externally driven bus lines).
const (
	PinSCL uint = 0 // I2C clock
	PinSDA uint = 1 // I2C data
)

// uo_out bit assignments.
const (
	PinSDAOE uint = 1 // SDA output-enable: 1 = device pulls SDA low (ACK)
	PinSCLK  uint = 2 // SPI clock
	PinMOSI  uint = 3 // SPI master out
	PinCSN   uint = 4 // SPI chip-select, active low: 1 = idle
)

// Config carries the build-time constants of the bridge.
type Config struct {
	// SlaveAddr is the 7-bit I2C address the bridge answers to.
	SlaveAddr uint8

	// SPIDivisor is the number of system-clock ticks per SPI clock period.
	// Values below 2 are clamped to 2 (one tick per half-period).
	SPIDivisor int
}

// DefaultConfig matches the reference bridge: address 0x28, SPI clock at a
// tenth of the system clock.
func DefaultConfig() Config {
	return Config{
		SlaveAddr:  0x28,
		SPIDivisor: 10,
	}
}
