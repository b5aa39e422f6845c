package hw

import "i2spi/hw/hwio"

// bench drives the bridge pins like an external I2C master and captures the
// resulting SPI traffic, one system-clock tick at a time.
type bench struct {
	br   *Bridge
	half int // I2C bit half-period in ticks

	// SPI capture
	prevSCLK bool
	prevCSN  bool
	open     bool
	cur      []uint8
	shift    uint8
	nbits    int
	frames   [][]uint8
	csnLow   int // total ticks with CS_N asserted
}

func newBench(cfg Config, half int) *bench {
	return &bench{br: New(cfg), half: half, prevCSN: true}
}

func (b *bench) run(n int) {
	for range n {
		b.br.Tick()
		b.sampleSPI()
	}
}

func (b *bench) sampleSPI() {
	uo := b.br.UOOut.Value
	csn := hwio.Bit(uo, PinCSN)
	sclk := hwio.Bit(uo, PinSCLK)
	mosi := hwio.Bit(uo, PinMOSI)

	if !csn {
		b.csnLow++
	}
	if b.prevCSN && !csn {
		b.open = true
		b.cur = nil
		b.shift, b.nbits = 0, 0
	}
	if b.open && !csn && sclk && !b.prevSCLK {
		b.shift <<= 1
		if mosi {
			b.shift |= 1
		}
		b.nbits++
		if b.nbits == 8 {
			b.cur = append(b.cur, b.shift)
			b.shift, b.nbits = 0, 0
		}
	}
	if b.open && !b.prevCSN && csn {
		b.frames = append(b.frames, b.cur)
		b.open = false
	}
	b.prevCSN, b.prevSCLK = csn, sclk
}

func (b *bench) lines(scl, sda bool) {
	var v uint8
	hwio.PutBit(&v, PinSCL, scl)
	hwio.PutBit(&v, PinSDA, sda)
	b.br.UIIn.Poke8(v)
}

func (b *bench) powerUp() {
	b.br.SetRstN(false)
	b.lines(true, true)
	b.run(10)
	b.br.SetRstN(true)
	b.run(10)
}

func (b *bench) start() {
	b.lines(true, true)
	b.run(b.half)
	b.lines(true, false)
	b.run(b.half)
	b.lines(false, false)
	b.run(b.half)
}

func (b *bench) stop() {
	b.lines(false, false)
	b.run(b.half)
	b.lines(true, false)
	b.run(b.half)
	b.lines(true, true)
	b.run(b.half)
}

func (b *bench) writeByte(val uint8) bool {
	b.writeBits(val, 8)

	// ACK cell: SDA released, SCL pulsed, device drive sampled mid-high.
	b.lines(false, true)
	b.run(b.half)
	b.lines(true, true)
	b.run(b.half)
	ack := b.br.UOOut.Bit(PinSDAOE)
	b.run(b.half)
	b.lines(false, true)
	b.run(b.half)
	return ack
}

func (b *bench) writeBits(val uint8, n int) {
	for bit := 7; bit > 7-n; bit-- {
		sda := val>>uint(bit)&1 != 0
		b.lines(false, sda)
		b.run(b.half)
		b.lines(true, sda)
		b.run(2 * b.half)
		b.lines(false, sda)
		b.run(b.half)
	}
}
