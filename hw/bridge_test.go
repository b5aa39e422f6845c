package hw

import (
	"slices"
	"testing"
)

func TestBridgeForwardsWrite(t *testing.T) {
	b := newBench(testConfig(), 20)
	b.powerUp()

	b.start()
	acks := []bool{
		b.writeByte(testAddr<<1 | 0),
		b.writeByte(0x01),
		b.writeByte(0xA5),
	}
	b.stop()
	b.run(500)

	for i, ack := range acks {
		if !ack {
			t.Fatalf("byte %d not ACKed", i)
		}
	}
	if len(b.frames) != 1 {
		t.Fatalf("got %d SPI frames, want 1", len(b.frames))
	}
	if want := []uint8{0x01, 0xA5}; !slices.Equal(b.frames[0], want) {
		t.Fatalf("SPI frame = %#v, want %#v", b.frames[0], want)
	}
}

func TestBridgeBackToBackWrites(t *testing.T) {
	b := newBench(testConfig(), 20)
	b.powerUp()

	writes := [][2]uint8{{0x01, 0xA5}, {0x7F, 0x00}}
	for _, w := range writes {
		b.start()
		if !b.writeByte(testAddr<<1|0) || !b.writeByte(w[0]) || !b.writeByte(w[1]) {
			t.Fatalf("write %v not fully ACKed", w)
		}
		b.stop()
		b.run(500)
	}

	if len(b.frames) != 2 {
		t.Fatalf("got %d SPI frames, want 2", len(b.frames))
	}
	for i, w := range writes {
		if !slices.Equal(b.frames[i], w[:]) {
			t.Fatalf("frame %d = %#v, want %#v", i, b.frames[i], w)
		}
	}
}

func TestBridgeResetMidTransaction(t *testing.T) {
	b := newBench(testConfig(), 20)
	b.powerUp()

	b.start()
	if !b.writeByte(testAddr<<1 | 0) {
		t.Fatal("address byte not ACKed")
	}
	b.writeBits(0x01, 5)

	// Reset strikes mid-byte.
	b.br.SetRstN(false)
	b.run(3)
	if got := b.br.UOOut.Value; got != 1<<PinCSN {
		t.Fatalf("outputs under reset = %#08b, want CS_N high only", got)
	}

	b.br.SetRstN(true)
	b.lines(true, true)
	b.run(1)
	if got := b.br.UOOut.Value; got != 1<<PinCSN {
		t.Fatalf("outputs after reset release = %#08b, want CS_N high only", got)
	}

	// The bridge is functional again after reset.
	b.run(50)
	b.start()
	if !b.writeByte(testAddr<<1|0) || !b.writeByte(0x02) || !b.writeByte(0x03) {
		t.Fatal("post-reset write not fully ACKed")
	}
	b.stop()
	b.run(500)
	if len(b.frames) != 1 || !slices.Equal(b.frames[0], []uint8{0x02, 0x03}) {
		t.Fatalf("post-reset SPI frames = %#v", b.frames)
	}
}

func TestBridgeDropsJobWhileSPIBusy(t *testing.T) {
	// Slow SPI, fast I2C: the first transfer is still shifting when the
	// second transaction completes, so the second job is dropped whole.
	cfg := Config{SlaveAddr: testAddr, SPIDivisor: 4000}
	b := newBench(cfg, 5)
	b.powerUp()

	for _, w := range [][2]uint8{{0x01, 0xA5}, {0x02, 0x5A}} {
		b.start()
		if !b.writeByte(testAddr<<1|0) || !b.writeByte(w[0]) || !b.writeByte(w[1]) {
			t.Fatalf("write %v not fully ACKed", w)
		}
		b.stop()
	}

	// Let the first transfer finish: 16 bits plus setup and hold.
	b.run(18 * 4000)

	if len(b.frames) != 1 {
		t.Fatalf("got %d SPI frames, want 1 (second job dropped)", len(b.frames))
	}
	if want := []uint8{0x01, 0xA5}; !slices.Equal(b.frames[0], want) {
		t.Fatalf("SPI frame = %#v, want %#v (first job must shift undisturbed)", b.frames[0], want)
	}
}
