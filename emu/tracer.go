package emu

import (
	"fmt"
	"io"

	"i2spi/hw"
	"i2spi/hw/hwio"
)

// Tracer writes a text trace of the bridge pins, one line per tick on which
// any pin changed.
type Tracer struct {
	w    io.Writer
	buf  []byte
	prev uint16
	seen bool
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

func (t *Tracer) Sample(tick int64, ui, uo uint8) {
	cur := uint16(ui)<<8 | uint16(uo)
	if t.seen && cur == t.prev {
		return
	}
	t.prev = cur
	t.seen = true

	t.buf = fmt.Appendf(t.buf[:0], "%8d  scl=%d sda=%d  sda_oe=%d sclk=%d mosi=%d cs_n=%d\n",
		tick,
		hwio.Biti(ui, hw.PinSCL),
		hwio.Biti(ui, hw.PinSDA),
		hwio.Biti(uo, hw.PinSDAOE),
		hwio.Biti(uo, hw.PinSCLK),
		hwio.Biti(uo, hw.PinMOSI),
		hwio.Biti(uo, hw.PinCSN))
	t.w.Write(t.buf)
}
