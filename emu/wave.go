package emu

import (
	"io"

	"github.com/go-faster/jx"

	"i2spi/hw"
	"i2spi/hw/hwio"
)

// WaveWriter dumps the pin waveform as JSON lines, one object per tick on
// which any pin changed. The output is meant for offline inspection and
// plotting.
type WaveWriter struct {
	w    io.Writer
	enc  jx.Encoder
	prev uint16
	seen bool
	err  error
}

func NewWaveWriter(w io.Writer) *WaveWriter {
	return &WaveWriter{w: w}
}

// Err reports the first write error encountered, if any.
func (ww *WaveWriter) Err() error {
	return ww.err
}

func (ww *WaveWriter) Sample(tick int64, ui, uo uint8) {
	cur := uint16(ui)<<8 | uint16(uo)
	if ww.seen && cur == ww.prev {
		return
	}
	ww.prev = cur
	ww.seen = true

	if ww.err != nil {
		return
	}

	e := &ww.enc
	e.Reset()
	e.ObjStart()
	e.FieldStart("t")
	e.Int64(tick)
	e.FieldStart("scl")
	e.Int(int(hwio.Biti(ui, hw.PinSCL)))
	e.FieldStart("sda")
	e.Int(int(hwio.Biti(ui, hw.PinSDA)))
	e.FieldStart("sda_oe")
	e.Int(int(hwio.Biti(uo, hw.PinSDAOE)))
	e.FieldStart("sclk")
	e.Int(int(hwio.Biti(uo, hw.PinSCLK)))
	e.FieldStart("mosi")
	e.Int(int(hwio.Biti(uo, hw.PinMOSI)))
	e.FieldStart("cs_n")
	e.Int(int(hwio.Biti(uo, hw.PinCSN)))
	e.ObjEnd()

	if _, err := ww.w.Write(append(e.Bytes(), '\n')); err != nil {
		ww.err = err
	}
}
