package hw

import (
	"i2spi/emu/log"
	"i2spi/hw/hwio"
)

// Bridge is the I2C-slave to SPI-master bridge core. The frontend drives
// UIIn and the reset line, calls Tick once per system clock, and observes
// UOOut. All state machines advance exactly once per tick.
type Bridge struct {
	cfg Config

	UIIn  hwio.Port8 // bit0 = SCL, bit1 = SDA
	UOOut hwio.Port8 // see Pin* constants
	UIO   hwio.Port8 // bidirectional bank, unused by the core

	rstn  bool
	ticks int64

	sync lineSync
	dec  i2cDecoder
	spi  spiMaster
}

func New(cfg Config) *Bridge {
	b := &Bridge{cfg: cfg}

	b.UIIn = hwio.Port8{Name: "ui_in"}
	b.UIIn.WriteCb = func(old, val uint8) {
		if old != val {
			log.ModHw.DebugZ("bus lines").
				Bool("scl", hwio.Bit(val, PinSCL)).
				Bool("sda", hwio.Bit(val, PinSDA)).
				End()
		}
	}
	b.UOOut = hwio.Port8{Name: "uo_out", RoMask: 0xFF}
	b.UIO = hwio.Port8{Name: "uio"}

	b.dec.slaveAddr = cfg.SlaveAddr & 0x7F
	b.spi.init(cfg.SPIDivisor)
	b.powerOn()
	return b
}

// powerOn puts every state machine in its initial state and deasserts the
// outputs. Also the effect of holding reset.
func (b *Bridge) powerOn() {
	b.sync.reset()
	b.dec.reset()
	b.spi.reset()
	b.driveOutputs()
}

// SetRstN drives the active-low reset line. While low, Tick holds
// everything at idle.
func (b *Bridge) SetRstN(level bool) {
	b.rstn = level
}

// Ticks returns the number of elapsed system-clock ticks.
func (b *Bridge) Ticks() int64 { return b.ticks }

// AddLogContext stamps the current tick on log entries.
func (b *Bridge) AddLogContext(e *log.EntryZ) {
	e.Int("tick", b.ticks)
}

// Tick advances the whole bridge by one system-clock tick. Ordering within
// a tick: synchronizer, decoder, controller handoff, SPI generator, output
// pins.
func (b *Bridge) Tick() {
	b.ticks++

	if !b.rstn {
		b.powerOn()
		return
	}

	e := b.sync.step(b.UIIn.Bit(PinSCL), b.UIIn.Bit(PinSDA))

	prev := b.dec.state
	switch b.dec.step(e) {
	case evAddrMatch:
		log.ModI2C.DebugZ("address matched").Hex8("addr", b.dec.frame.addr).End()
	case evAddrMismatch:
		log.ModI2C.DebugZ("address mismatch, NACK").
			Hex8("addr", b.dec.frame.addr).
			Bool("read", b.dec.frame.read).
			End()
	case evAbort:
		log.ModI2C.DebugZ("frame aborted").Stringer("from", prev).End()
	case evFrameDone:
		b.forward(b.dec.frame)
	}

	wasBusy := b.spi.busy()
	b.spi.step()
	if wasBusy && !b.spi.busy() {
		log.ModSPI.DebugZ("transfer complete").End()
	}
	b.driveOutputs()
}

// forward hands a completed frame to the SPI generator. If a transfer is
// still in flight the new job is dropped; it never disturbs the ongoing
// shift.
func (b *Bridge) forward(f frame) {
	if b.spi.busy() {
		log.ModBridge.WarnZ("SPI busy, dropping job").
			Hex8("reg", f.reg).
			Hex8("data", f.data).
			End()
		return
	}
	log.ModBridge.DebugZ("forwarding write").
		Hex8("reg", f.reg).
		Hex8("data", f.data).
		End()
	b.spi.start(f.reg, f.data)
}

func (b *Bridge) driveOutputs() {
	var out uint8
	hwio.PutBit(&out, PinSDAOE, b.dec.sdaOE)
	hwio.PutBit(&out, PinSCLK, b.spi.sclk)
	hwio.PutBit(&out, PinMOSI, b.spi.mosi)
	hwio.PutBit(&out, PinCSN, b.spi.csn)
	b.UOOut.Value = out
}
