package emu

import (
	"i2spi/hw"
	"i2spi/hw/hwio"
)

// SPIRecorder reconstructs the SPI traffic from the output pins: a frame
// opens on the CS_N falling edge, bits are captured on the SCLK rising edge,
// MSB first, and the frame closes when CS_N deasserts.
type SPIRecorder struct {
	Frames [][]uint8

	// Leftover bits of an incomplete byte when the last frame closed.
	Partial int

	prevSCLK bool
	prevCSN  bool
	open     bool
	cur      []uint8
	shift    uint8
	nbits    int
}

func NewSPIRecorder() *SPIRecorder {
	return &SPIRecorder{prevCSN: true}
}

func (r *SPIRecorder) Sample(tick int64, ui, uo uint8) {
	csn := hwio.Bit(uo, hw.PinCSN)
	sclk := hwio.Bit(uo, hw.PinSCLK)
	mosi := hwio.Bit(uo, hw.PinMOSI)

	if r.prevCSN && !csn {
		r.open = true
		r.cur = nil
		r.shift, r.nbits = 0, 0
	}

	if r.open && !csn && sclk && !r.prevSCLK {
		r.shift <<= 1
		if mosi {
			r.shift |= 1
		}
		r.nbits++
		if r.nbits == 8 {
			r.cur = append(r.cur, r.shift)
			r.shift, r.nbits = 0, 0
		}
	}

	if r.open && !r.prevCSN && csn {
		r.Frames = append(r.Frames, r.cur)
		r.Partial = r.nbits
		r.open = false
	}

	r.prevCSN, r.prevSCLK = csn, sclk
}
