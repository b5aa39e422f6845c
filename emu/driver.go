package emu

import (
	"i2spi/hw"
	"i2spi/hw/hwio"
)

// A Probe observes the bridge pins once per system-clock tick.
type Probe interface {
	Sample(tick int64, ui, uo uint8)
}

// Driver bit-bangs I2C master transactions onto the bridge pins, advancing
// the system clock as it goes. It reproduces the stimulus a real master
// would generate: SDA only changes while SCL is low, except for the
// START/STOP framing.
type Driver struct {
	br      *hw.Bridge
	bitHalf int // I2C bit half-period, in system ticks
	probes  []Probe
}

func NewDriver(br *hw.Bridge, bitHalf int) *Driver {
	// The synchronizer adds two ticks of latency, a shorter half-period
	// would outrun it.
	if bitHalf < 4 {
		bitHalf = 4
	}
	return &Driver{br: br, bitHalf: bitHalf}
}

func (d *Driver) Attach(p Probe) {
	d.probes = append(d.probes, p)
}

// Run advances the system clock by n ticks.
func (d *Driver) Run(n int) {
	for range n {
		d.br.Tick()
		for _, p := range d.probes {
			p.Sample(d.br.Ticks(), d.br.UIIn.Peek8(), d.br.UOOut.Peek8())
		}
	}
}

func (d *Driver) setLines(scl, sda bool) {
	var v uint8
	hwio.PutBit(&v, hw.PinSCL, scl)
	hwio.PutBit(&v, hw.PinSDA, sda)
	d.br.UIIn.Poke8(v)
}

// PowerUp pulses reset with the bus idle and lets the bridge settle.
func (d *Driver) PowerUp() {
	d.br.SetRstN(false)
	d.setLines(true, true)
	d.br.UIO.Poke8(0)
	d.Run(10)
	d.br.SetRstN(true)
	d.Run(10)
}

// Start issues a START condition: SDA falls while SCL is high.
func (d *Driver) Start() {
	d.setLines(true, true)
	d.Run(d.bitHalf)
	d.setLines(true, false)
	d.Run(d.bitHalf)
	d.setLines(false, false)
	d.Run(d.bitHalf)
}

// Stop issues a STOP condition: SDA rises while SCL is high.
func (d *Driver) Stop() {
	d.setLines(false, false)
	d.Run(d.bitHalf)
	d.setLines(true, false)
	d.Run(d.bitHalf)
	d.setLines(true, true)
	d.Run(d.bitHalf)
}

// WriteByte shifts out one byte MSB first and reports whether the device
// acknowledged it. The ACK drive is sampled in the middle of the ACK cell
// high phase, with SDA released.
func (d *Driver) WriteByte(val uint8) bool {
	for bit := 7; bit >= 0; bit-- {
		sda := val>>uint(bit)&1 != 0
		d.setLines(false, sda)
		d.Run(d.bitHalf)
		d.setLines(true, sda)
		d.Run(2 * d.bitHalf)
		d.setLines(false, sda)
		d.Run(d.bitHalf)
	}

	d.setLines(false, true)
	d.Run(d.bitHalf)
	d.setLines(true, true)
	d.Run(d.bitHalf)
	ack := d.br.UOOut.Bit(hw.PinSDAOE)
	d.Run(d.bitHalf)
	d.setLines(false, true)
	d.Run(d.bitHalf)
	return ack
}

// WriteBits shifts out only the n most significant bits of val, without an
// ACK cell. Used to exercise aborted transactions.
func (d *Driver) WriteBits(val uint8, n int) {
	for bit := 7; bit > 7-n; bit-- {
		sda := val>>uint(bit)&1 != 0
		d.setLines(false, sda)
		d.Run(d.bitHalf)
		d.setLines(true, sda)
		d.Run(2 * d.bitHalf)
		d.setLines(false, sda)
		d.Run(d.bitHalf)
	}
}

// Write performs a complete register write transaction and reports the
// three per-byte acknowledgments.
func (d *Driver) Write(addr, reg, data uint8) (addrAck, regAck, dataAck bool) {
	d.Start()
	addrAck = d.WriteByte(addr<<1 | 0)
	regAck = d.WriteByte(reg)
	dataAck = d.WriteByte(data)
	d.Stop()
	return addrAck, regAck, dataAck
}
